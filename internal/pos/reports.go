package pos

import (
	"sort"
	"time"

	"hotelpos-backend/internal/models"
)

/* =========================
 * Raporlama
 * ========================= */

// OrdersInRange createdAt değeri [startMs, endMs] aralığına (sınırlar dahil)
// düşen siparişleri döner.
func (s *Store) OrdersInRange(startMs, endMs int64) ([]models.Order, error) {
	if endMs < startMs {
		return nil, ErrInvalidRange
	}
	start := time.UnixMilli(startMs)
	end := time.UnixMilli(endMs)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.state.Orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type OrderSummary struct {
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func SumOrders(orders []models.Order) OrderSummary {
	var sub, tax, total float64
	for _, o := range orders {
		sub += o.Subtotal
		tax += o.Tax
		total += o.Total
	}
	return OrderSummary{
		Count:    len(orders),
		Subtotal: Round2(sub),
		Tax:      Round2(tax),
		Total:    Round2(total),
	}
}

type ItemSales struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Gross float64 `json:"gross"`
}

// SalesByItem sipariş satırlarını ürün adına göre toplar, brüt ciroya göre
// azalan sıralar.
func SalesByItem(orders []models.Order) []ItemSales {
	type agg struct {
		qty   int
		gross float64
	}
	m := map[string]*agg{}
	names := []string{}
	for _, o := range orders {
		for _, l := range o.Items {
			a, ok := m[l.Name]
			if !ok {
				a = &agg{}
				m[l.Name] = a
				names = append(names, l.Name)
			}
			a.qty += l.Qty
			a.gross += l.LineTotal
		}
	}
	out := make([]ItemSales, 0, len(names))
	for _, n := range names {
		out = append(out, ItemSales{Name: n, Qty: m[n].qty, Gross: Round2(m[n].gross)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gross > out[j].Gross })
	return out
}

type CategorySales struct {
	Category string  `json:"category"`
	Gross    float64 `json:"gross"`
}

// SalesByCategory satırları katalogdaki kategoriye göre toplar; sipariş
// anlık görüntüsü kategori taşımadığı için eşleşme ürün adıyla yapılır,
// eşleşmeyenler "Kategorisiz" altında toplanır.
func (s *Store) SalesByCategory(orders []models.Order) []CategorySales {
	s.mu.Lock()
	byName := map[string]string{}
	for _, it := range s.state.Catalog {
		byName[it.Name] = it.Category
	}
	s.mu.Unlock()

	m := map[string]float64{}
	cats := []string{}
	for _, o := range orders {
		for _, l := range o.Items {
			cat, ok := byName[l.Name]
			if !ok || cat == "" {
				cat = "Kategorisiz"
			}
			if _, seen := m[cat]; !seen {
				cats = append(cats, cat)
			}
			m[cat] += l.LineTotal
		}
	}
	out := make([]CategorySales, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategorySales{Category: c, Gross: Round2(m[c])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gross > out[j].Gross })
	return out
}
