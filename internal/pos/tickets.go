package pos

import "hotelpos-backend/internal/models"

/* =========================
 * Masa adisyonları
 * ========================= */

// ensureTicket masanın açık adisyonunu döner, yoksa boş bir tane açar.
// Kilit tutulurken çağrılır.
func (s *Store) ensureTicket(tableID string) *models.Ticket {
	if tk := s.state.ticketByTable(tableID); tk != nil {
		if tk.Kitchen.Prep == nil || tk.Kitchen.Served == nil {
			tk.Kitchen = models.NewKitchenCounts()
		}
		return tk
	}
	s.state.Tickets = append(s.state.Tickets, models.Ticket{
		ID:        rid(),
		TableID:   tableID,
		Items:     models.OrderLineList{},
		Kitchen:   models.NewKitchenCounts(),
		CreatedAt: now(),
		UpdatedAt: now(),
	})
	return &s.state.Tickets[len(s.state.Tickets)-1]
}

func (s *Store) SetGuestName(tableID, name string) error {
	if tableID == "" {
		return ErrTableNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := s.ensureTicket(tableID)
	tk.GuestName = name
	tk.UpdatedAt = now()
	s.persistTicket(*tk)
	s.notify()
	return nil
}

// SaveCartToTable adisyon satırlarını sepetin o anki haliyle KOMPLE değiştirir
// (merge değil): sepet, masanın güncel durumunun otoritesi kabul edilir.
// Misafir adı ve mutfak sayaçları korunur.
func (s *Store) SaveCartToTable(tableID string) error {
	if tableID == "" {
		return ErrTableNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := s.ensureTicket(tableID)
	tk.Items = models.OrderLineList(cloneLines(s.state.Cart))
	tk.UpdatedAt = now()
	s.persistTicket(*tk)
	s.notify()
	return nil
}

// ParkCartToTable sepeti masaya park eder: mevcut adisyon varsa satırlar
// şekil bazında birleştirilir, yoksa yeni adisyon açılır. Sepet boşaltılır.
func (s *Store) ParkCartToTable(tableID string) error {
	if tableID == "" {
		return ErrTableNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := s.ensureTicket(tableID)
	tk.Items = models.OrderLineList(MergeLines(tk.Items, s.state.Cart))
	tk.UpdatedAt = now()
	s.state.Cart = nil
	s.persistTicket(*tk)
	s.notify()
	return nil
}

// LoadTableToCart adisyon satırlarını sepete kopyalar (adisyon değişmez).
func (s *Store) LoadTableToCart(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := s.state.ticketByTable(tableID)
	if tk == nil {
		return ErrTicketNotFound
	}
	s.state.Cart = cloneLines(tk.Items)
	s.state.ActiveTableID = tableID
	s.notify()
	return nil
}

// ClearTicket adisyonu ve mutfak sayaçlarını siler. Kuyruktaki mutfak
// fişlerine dokunmaz: mutfağa gitmiş yemek zaten pişiyor olabilir.
func (s *Store) ClearTicket(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearTicketLocked(tableID)
}

func (s *Store) clearTicketLocked(tableID string) error {
	tk := s.state.ticketByTable(tableID)
	if tk == nil {
		return ErrTicketNotFound
	}
	id := tk.ID
	next := s.state.Tickets[:0]
	for _, t := range s.state.Tickets {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.state.Tickets = next

	if s.persist != nil {
		s.enqueue("ticket delete", func() error { return s.persist.DeleteTicket(id) })
	}
	if s.remote != nil {
		s.enqueue("ticket remote delete", func() error { return s.remote.Delete(ColTickets, id) })
	}
	s.notify()
	return nil
}

// TransferTicket adisyonu başka masaya taşır. Hedefte adisyon varsa satırlar
// şekil bazında, mutfak sayaçları anahtar bazında toplanarak birleştirilir;
// yoksa adisyon olduğu gibi taşınır.
func (s *Store) TransferTicket(fromTableID, toTableID string) error {
	if fromTableID == "" || toTableID == "" {
		return ErrTableNotFound
	}
	if fromTableID == toTableID {
		return ErrSameTable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.state.ticketByTable(fromTableID)
	if from == nil {
		return ErrTicketNotFound
	}
	to := s.state.ticketByTable(toTableID)

	if to == nil {
		from.TableID = toTableID
		from.UpdatedAt = now()
		s.persistTicket(*from)
		s.notify()
		return nil
	}

	to.Items = models.OrderLineList(MergeLines(to.Items, from.Items))
	merged := cloneCounts(to.Kitchen)
	mergeCountsAdd(merged.Prep, from.Kitchen.Prep)
	mergeCountsAdd(merged.Served, from.Kitchen.Served)
	to.Kitchen = merged
	if to.GuestName == "" {
		to.GuestName = from.GuestName
	}
	to.UpdatedAt = now()

	fromID := from.ID
	next := s.state.Tickets[:0]
	for _, t := range s.state.Tickets {
		if t.ID != fromID {
			next = append(next, t)
		}
	}
	s.state.Tickets = next

	// to pointer'ı dilim filtrelemeden sonra geçersiz; id ile tekrar bul
	if target := s.state.ticketByTable(toTableID); target != nil {
		s.persistTicket(*target)
	}
	if s.persist != nil {
		s.enqueue("ticket delete", func() error { return s.persist.DeleteTicket(fromID) })
	}
	if s.remote != nil {
		s.enqueue("ticket remote delete", func() error { return s.remote.Delete(ColTickets, fromID) })
	}
	s.notify()
	return nil
}
