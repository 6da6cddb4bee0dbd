package pos

import "hotelpos-backend/internal/models"

// Tüm POS durumu tek bir yapıda toplanır. Mutasyonlar Store üzerinden
// sırayla uygulanır; bellek içi durum her zaman otoritedir, kalıcılık
// arkadan gelir.
type State struct {
	Catalog []models.CatalogItem
	Tables  []models.DiningTable

	Cart          []models.OrderLine
	Tickets       []models.Ticket
	KitchenQueue  []models.KitchenTicket
	Orders        []models.Order
	ActiveTableID string
	LastOrderID   string

	Discount         Adjustment
	ServiceChargePct float64
	Tip              Adjustment

	Currency       string
	DefaultTaxRate float64

	// Hidrasyon durumu
	Hydrated   bool
	Degraded   bool // durable store'dan yüklenemedi, seed ile ayakta
	HydrateErr string
}

func newState() State {
	return State{
		Currency:       "€",
		DefaultTaxRate: 0.07,
		Discount:       Adjustment{Type: AdjustmentNone},
		Tip:            Adjustment{Type: AdjustmentNone},
	}
}

func (s *State) ticketByTable(tableID string) *models.Ticket {
	for i := range s.Tickets {
		if s.Tickets[i].TableID == tableID {
			return &s.Tickets[i]
		}
	}
	return nil
}

func (s *State) item(itemID string) (models.CatalogItem, bool) {
	for _, it := range s.Catalog {
		if it.ID == itemID {
			return it, true
		}
	}
	return models.CatalogItem{}, false
}

func cloneLines(lines []models.OrderLine) []models.OrderLine {
	out := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		mods := make(models.ModifierList, len(l.Mods))
		copy(mods, l.Mods)
		l.Mods = mods
		out[i] = l
	}
	return out
}
