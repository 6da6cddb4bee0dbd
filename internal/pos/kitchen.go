package pos

import (
	"sort"

	"hotelpos-backend/internal/models"
)

/* =========================
 * Mutfak (KDS)
 * ========================= */

// SendResult bir gönderimin özetidir (UI bildirimi için).
type SendResult struct {
	TicketID   string         `json:"ticketId"` // boş: yeni bir şey gitmedi
	TableLabel string         `json:"tableLabel"`
	Sent       []SentLineInfo `json:"sent"`
}

type SentLineInfo struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// SendToKitchen sepetten mutfağa gönderir. Masa verilmişse mevcut adisyona
// göre yalnızca delta gider; delta boşsa fiş açılmaz ama adisyon sepetle
// tazelenir. Masasız (paket) gönderimde sepetin tamamı gider ve sepet
// boşalır. Her gönderim kendi mutfak fişini açar; fişler asla sonradan
// birleştirilmez.
func (s *Store) SendToKitchen(tableID string) (*SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	label := "PAKET"
	if tableID != "" {
		label = "Masa"
		for _, t := range s.state.Tables {
			if t.ID == tableID {
				label = t.Label
				break
			}
		}
	}

	toSend := s.state.Cart
	var existing *models.Ticket
	if tableID != "" {
		existing = s.state.ticketByTable(tableID)
		if existing != nil {
			toSend = DeltaLines(existing.Items, s.state.Cart)
		}
	}

	// Yeni bir şey yoksa sadece adisyon anlık görüntüsünü tazele
	if tableID != "" && existing != nil && len(toSend) == 0 {
		existing.Items = models.OrderLineList(cloneLines(s.state.Cart))
		existing.UpdatedAt = now()
		s.persistTicket(*existing)
		s.notify()
		return &SendResult{TableLabel: label, Sent: []SentLineInfo{}}, nil
	}

	kItems := make(models.KitchenItemList, 0, len(toSend))
	sent := make([]SentLineInfo, 0, len(toSend))
	for _, l := range toSend {
		name := "Bilinmeyen"
		if it, ok := s.state.item(l.ItemID); ok {
			name = it.Name
		}
		kItems = append(kItems, models.KitchenItem{
			ID:       rid(),
			LineID:   l.ID,
			ShapeKey: ShapeKey(l.ItemID, l.Mods),
			Name:     name,
			ModsText: ModsLabel(l.Mods),
			Qty:      l.Qty,
			Status:   models.KitchenItemPending,
		})
		sent = append(sent, SentLineInfo{Name: name, Qty: l.Qty})
	}

	kt := models.KitchenTicket{
		ID:        rid(),
		TableID:   tableID,
		Label:     label,
		Items:     kItems,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	s.state.KitchenQueue = append(s.state.KitchenQueue, kt)
	s.persistKitchenTicket(kt)

	if tableID != "" {
		// Adisyonu sepetle tazele ve gönderilen adetleri prep'e işle
		tk := s.ensureTicket(tableID)
		tk.Items = models.OrderLineList(cloneLines(s.state.Cart))
		for _, ki := range kItems {
			addCount(tk.Kitchen.Prep, ki.ShapeKey, ki.Qty)
		}
		tk.UpdatedAt = now()
		s.persistTicket(*tk)
	} else {
		// Paket: sepet akışı burada biter
		s.state.Cart = nil
	}

	s.notify()
	return &SendResult{TicketID: kt.ID, TableLabel: label, Sent: sent}, nil
}

// SetKitchenItemStatus tek kalemin durumunu değiştirir. pending→done geçişi
// kalem adedini prep'ten served'e taşır; done→pending geri alır. Durum
// değişmiyorsa sayaçlara dokunulmaz.
func (s *Store) SetKitchenItemStatus(ticketID, itemID string, status models.KitchenItemStatus) error {
	if status != models.KitchenItemPending && status != models.KitchenItemDone {
		return ErrKitchenNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var kt *models.KitchenTicket
	for i := range s.state.KitchenQueue {
		if s.state.KitchenQueue[i].ID == ticketID {
			kt = &s.state.KitchenQueue[i]
			break
		}
	}
	if kt == nil {
		return ErrKitchenNotFound
	}

	var prev models.KitchenItemStatus
	var shapeKey string
	qty := 0
	found := false
	for i := range kt.Items {
		if kt.Items[i].ID == itemID {
			prev = kt.Items[i].Status
			shapeKey = kt.Items[i].ShapeKey
			qty = kt.Items[i].Qty
			kt.Items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return ErrKitchenNotFound
	}
	if prev == status {
		return nil // no-op
	}

	kt.UpdatedAt = now()
	s.persistKitchenTicket(*kt)

	// Paket fişlerinde masa adisyonu yok, sayaç da yok
	if kt.TableID != "" {
		if tk := s.state.ticketByTable(kt.TableID); tk != nil {
			if status == models.KitchenItemDone {
				transferCount(tk.Kitchen.Prep, tk.Kitchen.Served, shapeKey, qty)
			} else {
				transferCount(tk.Kitchen.Served, tk.Kitchen.Prep, shapeKey, qty)
			}
			tk.UpdatedAt = now()
			s.persistTicket(*tk)
		}
	}

	s.notify()
	return nil
}

// MarkAllDone fişteki hâlâ pending olan tüm kalemleri done yapar ve
// adetlerini prep'ten served'e taşır.
func (s *Store) MarkAllDone(ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kt *models.KitchenTicket
	for i := range s.state.KitchenQueue {
		if s.state.KitchenQueue[i].ID == ticketID {
			kt = &s.state.KitchenQueue[i]
			break
		}
	}
	if kt == nil {
		return ErrKitchenNotFound
	}

	var tk *models.Ticket
	if kt.TableID != "" {
		tk = s.state.ticketByTable(kt.TableID)
	}

	changed := false
	for i := range kt.Items {
		if kt.Items[i].Status == models.KitchenItemDone {
			continue
		}
		kt.Items[i].Status = models.KitchenItemDone
		changed = true
		if tk != nil {
			transferCount(tk.Kitchen.Prep, tk.Kitchen.Served, kt.Items[i].ShapeKey, kt.Items[i].Qty)
		}
	}
	if !changed {
		return nil
	}

	kt.UpdatedAt = now()
	s.persistKitchenTicket(*kt)
	if tk != nil {
		tk.UpdatedAt = now()
		s.persistTicket(*tk)
	}
	s.notify()
	return nil
}

// BumpKitchenTicket öncelik bayrağını çevirir; force verilirse o değere
// zorlar.
func (s *Store) BumpKitchenTicket(ticketID string, force *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.KitchenQueue {
		kt := &s.state.KitchenQueue[i]
		if kt.ID != ticketID {
			continue
		}
		if force != nil {
			if *force {
				kt.Priority = 1
			} else {
				kt.Priority = 0
			}
		} else if kt.Priority != 0 {
			kt.Priority = 0
		} else {
			kt.Priority = 1
		}
		kt.UpdatedAt = now()
		s.persistKitchenTicket(*kt)
		s.notify()
		return nil
	}
	return ErrKitchenNotFound
}

// DeleteKitchenTicket fişi kuyruktan siler. Sayaçlardan yalnızca hâlâ
// pending olan kalemlerin adedi düşülür; done olmuş kalemler served'e
// çoktan taşınmıştır ve fişin silinmesi o geçmişi bozmamalıdır.
func (s *Store) DeleteKitchenTicket(ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kt *models.KitchenTicket
	next := s.state.KitchenQueue[:0]
	for i := range s.state.KitchenQueue {
		if s.state.KitchenQueue[i].ID == ticketID {
			copied := s.state.KitchenQueue[i]
			kt = &copied
			continue
		}
		next = append(next, s.state.KitchenQueue[i])
	}
	if kt == nil {
		return ErrKitchenNotFound
	}
	s.state.KitchenQueue = next

	if kt.TableID != "" {
		if tk := s.state.ticketByTable(kt.TableID); tk != nil {
			changed := false
			for _, it := range kt.Items {
				if it.Status != models.KitchenItemDone {
					subCount(tk.Kitchen.Prep, it.ShapeKey, it.Qty)
					changed = true
				}
			}
			if changed {
				tk.UpdatedAt = now()
				s.persistTicket(*tk)
			}
		}
	}

	id := kt.ID
	if s.persist != nil {
		s.enqueue("kitchen delete", func() error { return s.persist.DeleteKitchenTicket(id) })
	}
	if s.remote != nil {
		s.enqueue("kitchen remote delete", func() error { return s.remote.Delete(ColKitchen, id) })
	}
	s.notify()
	return nil
}

// KitchenCountsForTable masanın sayaçlarının kopyasını döner. Adisyon yoksa
// boş sayaç döner.
func (s *Store) KitchenCountsForTable(tableID string) models.KitchenCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tk := s.state.ticketByTable(tableID); tk != nil {
		return cloneCounts(tk.Kitchen)
	}
	return models.NewKitchenCounts()
}

// KitchenQueueView aktif ve tamamlanmış fişleri gösterim sırasına göre döner:
// aktifler öncelik desc, sonra yenilik desc; tamamlananlar bitiş yeniliği desc.
func (s *Store) KitchenQueueView() (active, completed []models.KitchenTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kt := range s.state.KitchenQueue {
		if kt.Completed() {
			completed = append(completed, kt)
		} else {
			active = append(active, kt)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority > active[j].Priority
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].UpdatedAt.After(completed[j].UpdatedAt)
	})
	return active, completed
}
