package pos

import "hotelpos-backend/internal/models"

/* =========================
 * Sepet
 * ========================= */

// AddItem ürünü sepete ekler; aynı şekilde (katı karşılaştırma) satır varsa
// adedini artırır, yoksa yeni satır açar.
func (s *Store) AddItem(itemID string, qty int, mods []models.Modifier) (models.OrderLine, error) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.item(itemID); !ok {
		return models.OrderLine{}, ErrItemNotFound
	}

	candidate := models.OrderLine{ItemID: itemID, Qty: qty, Mods: models.ModifierList(mods)}
	for i := range s.state.Cart {
		if linesMatchForMerge(s.state.Cart[i], candidate) {
			s.state.Cart[i].Qty += qty
			line := s.state.Cart[i]
			s.notify()
			return line, nil
		}
	}

	candidate.ID = rid()
	s.state.Cart = append(s.state.Cart, candidate)
	s.notify()
	return candidate, nil
}

func (s *Store) Increment(lineID string) error {
	return s.changeQtyBy(lineID, func(q int) int { return q + 1 })
}

// Decrement adedi azaltır ama 1'in altına düşürmez; satır silme ayrı ve
// bilinçli bir aksiyondur.
func (s *Store) Decrement(lineID string) error {
	return s.changeQtyBy(lineID, func(q int) int {
		if q <= 1 {
			return 1
		}
		return q - 1
	})
}

func (s *Store) ChangeQty(lineID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.changeQtyBy(lineID, func(int) int { return qty })
}

func (s *Store) changeQtyBy(lineID string, f func(int) int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Cart {
		if s.state.Cart[i].ID == lineID {
			s.state.Cart[i].Qty = f(s.state.Cart[i].Qty)
			s.notify()
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *Store) RemoveLine(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Cart[:0]
	found := false
	for _, l := range s.state.Cart {
		if l.ID == lineID {
			found = true
			continue
		}
		next = append(next, l)
	}
	if !found {
		return ErrLineNotFound
	}
	s.state.Cart = next
	s.notify()
	return nil
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.state.Cart = nil
	s.mu.Unlock()
	s.notify()
}

func (s *Store) CartLines() []models.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.state.Cart)
}

/* =========================
 * Ayarlamalar ve döküm
 * ========================= */

func (s *Store) SetDiscountPercent(p float64) {
	if p < 0 {
		p = 0
	}
	s.mu.Lock()
	s.state.Discount = Adjustment{Type: AdjustmentPercent, Value: p}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetDiscountAmount(a float64) {
	if a < 0 {
		a = 0
	}
	s.mu.Lock()
	s.state.Discount = Adjustment{Type: AdjustmentAmount, Value: a}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ClearDiscount() {
	s.mu.Lock()
	s.state.Discount = Adjustment{Type: AdjustmentNone}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetServiceChargePct(p float64) {
	if p < 0 {
		p = 0
	}
	s.mu.Lock()
	s.state.ServiceChargePct = p
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetTipPercent(p float64) {
	if p < 0 {
		p = 0
	}
	s.mu.Lock()
	s.state.Tip = Adjustment{Type: AdjustmentPercent, Value: p}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetTipAmount(a float64) {
	if a < 0 {
		a = 0
	}
	s.mu.Lock()
	s.state.Tip = Adjustment{Type: AdjustmentAmount, Value: a}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ClearTip() {
	s.mu.Lock()
	s.state.Tip = Adjustment{Type: AdjustmentNone}
	s.mu.Unlock()
	s.notify()
}

// Servis ücreti varsayılan vergi oranıyla vergilendirilir, bahşiş
// vergilendirilmez.
func (s *Store) pricingPolicy() PricingPolicy {
	return PricingPolicy{
		DefaultTaxRate:       s.state.DefaultTaxRate,
		ServiceChargeTaxable: true,
		TipTaxable:           false,
	}
}

// Breakdown aktif sepetin fiyat dökümünü hesaplar. Yan etkisizdir.
func (s *Store) Breakdown() Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeBreakdown(
		s.state.Cart,
		s.state.item,
		Adjustments{
			Discount:         s.state.Discount,
			ServiceChargePct: s.state.ServiceChargePct,
			Tip:              s.state.Tip,
		},
		s.pricingPolicy(),
	)
}
