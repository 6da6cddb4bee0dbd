package pos

import "hotelpos-backend/internal/models"

type CheckoutInput struct {
	Method   models.PaymentMethod
	Tendered *float64
	TableID  string // boş = paket servis
	Cashier  *models.CashierInfo
}

// Checkout sepeti kesinleşmiş, değişmez bir satış kaydına dönüştürür. Tek bir
// atomik geçiştir: ya sipariş oluşur, sepet boşalır, masanın adisyonu ve
// sayaçları silinir, ayarlamalar sıfırlanır; ya da (doğrulama hatasında)
// hiçbir şey değişmez.
func (s *Store) Checkout(in CheckoutInput) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if in.Method == "" {
		in.Method = models.PaymentCash
	}

	br := ComputeBreakdown(
		s.state.Cart,
		s.state.item,
		Adjustments{
			Discount:         s.state.Discount,
			ServiceChargePct: s.state.ServiceChargePct,
			Tip:              s.state.Tip,
		},
		s.pricingPolicy(),
	)

	// Nakit doğrulaması: alınan tutar zorunlu ve toplamı karşılamalı.
	// Reddedilen checkout hiçbir durumu değiştirmez.
	change := 0.0
	if in.Method == models.PaymentCash {
		if in.Tendered == nil {
			return models.Order{}, ErrTenderedRequired
		}
		if *in.Tendered < br.TotalGross {
			return models.Order{}, ErrInsufficientCash
		}
		change = Round2(*in.Tendered - br.TotalGross)
	}

	// Satır anlık görüntüsü: isim/fiyat satış anında çözülür, katalog
	// referansı taşınmaz.
	items := make(models.OrderItemList, 0, len(s.state.Cart))
	for _, l := range s.state.Cart {
		it, ok := s.state.item(l.ItemID)
		if !ok {
			it = models.CatalogItem{Name: "Bilinmeyen"}
		}
		mods := make(models.ModifierList, len(l.Mods))
		copy(mods, l.Mods)
		items = append(items, models.OrderItem{
			ID:        l.ID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       l.Qty,
			Mods:      mods,
			LineTotal: LineGross(l, it),
		})
	}

	order := models.Order{
		ID:       rid(),
		TableID:  in.TableID,
		Items:    items,
		Subtotal: br.SubtotalGross,
		Tax:      br.Tax,
		Total:    br.TotalGross,
		Payment: models.Payment{
			Method:   in.Method,
			Amount:   br.TotalGross,
			Tendered: in.Tendered,
			Change:   change,
		},
		Adjustments: models.OrderAdjustments{
			Discount: models.AdjustmentSnapshot{
				Type:   string(s.state.Discount.Type),
				Value:  s.state.Discount.Value,
				Amount: br.DiscountGross,
			},
			ServiceCharge: models.AdjustmentSnapshot{
				Type:   "percent",
				Value:  s.state.ServiceChargePct,
				Amount: br.ServiceChargeGross,
			},
			Tip: models.AdjustmentSnapshot{
				Type:   string(s.state.Tip.Type),
				Value:  s.state.Tip.Value,
				Amount: br.TipGross,
			},
		},
		CreatedAt: now(),
	}
	if in.Cashier != nil {
		order.Cashier = *in.Cashier
	}

	s.state.Orders = append(s.state.Orders, order)
	s.state.LastOrderID = order.ID
	s.state.Cart = nil

	if in.TableID != "" {
		// Masanın adisyonu ve sayaçları kapanır; hata dönse bile (adisyon
		// hiç açılmamış olabilir) checkout geçerlidir.
		_ = s.clearTicketLocked(in.TableID)
	}

	s.state.Discount = Adjustment{Type: AdjustmentNone}
	s.state.ServiceChargePct = 0
	s.state.Tip = Adjustment{Type: AdjustmentNone}

	if s.persist != nil {
		s.enqueue("order put", func() error { return s.persist.PutOrder(order) })
	}
	if s.remote != nil {
		s.enqueue("order upsert", func() error { return s.remote.Upsert(ColOrders, order) })
	}
	s.notify()
	return order, nil
}

// OrderByID kesinleşmiş siparişi döner.
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.state.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
