package pos

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelpos-backend/internal/models"
)

// Store tüm POS durumunun sahibidir. Mutasyonlar mutex ile sıralanır: iki
// mutasyon asla iç içe geçmez, her biri bellek içinde senkron tamamlanır.
// Kalıcılık ve uzak replikasyon görev kuyruğuna atılır; çağıran bunları
// beklemez (crash öncesi yazılmamış son mutasyon kaybolabilir, kabul edilen
// risk — durable store bir cache katmanıdır, transaction log değil).
type Store struct {
	mu    sync.Mutex
	state State

	persist Persister
	remote  Remote

	tasks chan task
	done  chan struct{}

	subMu sync.Mutex
	subs  map[int]chan struct{}
	nextSub int

	// Uzak koleksiyon başına tek seferlik bootstrap bayrağı
	bootMu       sync.Mutex
	bootstrapped map[string]bool
}

type task struct {
	desc string
	fn   func() error
}

const taskQueueSize = 256

func NewStore(p Persister, r Remote) *Store {
	s := &Store{
		state:        newState(),
		persist:      p,
		remote:       r,
		tasks:        make(chan task, taskQueueSize),
		done:         make(chan struct{}),
		subs:         map[int]chan struct{}{},
		bootstrapped: map[string]bool{},
	}
	go s.runTasks()
	return s
}

// SetRemote uzak kolaborator bağlantısı sonradan kurulduğunda çağrılır
// (NATS adresi yapılandırılmamışsa store uzaksız çalışır).
func (s *Store) SetRemote(r Remote) {
	s.mu.Lock()
	s.remote = r
	s.mu.Unlock()
}

// Close kuyruktaki görevlerin yazılmasını bekler.
func (s *Store) Close() {
	close(s.tasks)
	<-s.done
}

func (s *Store) runTasks() {
	for t := range s.tasks {
		if err := t.fn(); err != nil {
			// Kalıcılık uyarısı: bellek içi durum otorite, işlem
			// çağıran açısından başarılı. Sadece logla.
			log.Printf("[pos] arka plan yazma hatası (%s): %v", t.desc, err)
		}
	}
	close(s.done)
}

// enqueue görevi kuyruğa atar; kuyruk doluysa görevi düşürüp uyarı loglar
// (bloklamak mutasyon yolunu durdururdu).
func (s *Store) enqueue(desc string, fn func() error) {
	if fn == nil {
		return
	}
	select {
	case s.tasks <- task{desc: desc, fn: fn}:
	default:
		log.Printf("[pos] yazma kuyruğu dolu, görev düşürüldü: %s", desc)
	}
}

func (s *Store) persistTicket(tk models.Ticket) {
	if s.persist != nil {
		s.enqueue("ticket put", func() error { return s.persist.PutTicket(tk) })
	}
	if s.remote != nil {
		s.enqueue("ticket upsert", func() error { return s.remote.Upsert(ColTickets, tk) })
	}
}

func (s *Store) persistKitchenTicket(kt models.KitchenTicket) {
	if s.persist != nil {
		s.enqueue("kitchen put", func() error { return s.persist.PutKitchenTicket(kt) })
	}
	if s.remote != nil {
		s.enqueue("kitchen upsert", func() error { return s.remote.Upsert(ColKitchen, kt) })
	}
}

// Subscribe her mutasyondan sonra dürtülen bir kanal döner (UI katmanı durum
// rozetlerini buradan tazeler). İkinci dönüş değeri aboneliği bırakır.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default: // abone zaten uyarılmış
		}
	}
}

func rid() string { return uuid.NewString() }

func now() time.Time { return time.Now() }

// Snapshot durumun okuma amaçlı bir kopyasını döner. Üst seviye dilimler
// kopyalanır; çağıranlar içeriği değiştirmemelidir.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Catalog = append([]models.CatalogItem(nil), s.state.Catalog...)
	st.Tables = append([]models.DiningTable(nil), s.state.Tables...)
	st.Cart = cloneLines(s.state.Cart)
	st.Tickets = append([]models.Ticket(nil), s.state.Tickets...)
	st.KitchenQueue = append([]models.KitchenTicket(nil), s.state.KitchenQueue...)
	st.Orders = append([]models.Order(nil), s.state.Orders...)
	return st
}

// Degraded hidrasyonun seed verisiyle ayakta olup olmadığını bildirir.
func (s *Store) Degraded() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Degraded, s.state.HydrateErr
}

/* =========================
 * Katalog CRUD
 * ========================= */

type CatalogInput struct {
	Name         string
	Category     string
	Price        float64
	TaxRate      *float64
	OptionGroups []models.OptionGroup
}

func normalizeOptionGroups(groups []models.OptionGroup) models.OptionGroupList {
	out := make(models.OptionGroupList, 0, len(groups))
	for _, g := range groups {
		if g.Type != models.OptionGroupMulti {
			g.Type = models.OptionGroupSingle
		}
		// min: zorunluysa 1, değilse 0; max: single için 1
		if g.Min == 0 && g.Required {
			g.Min = 1
		}
		if g.Max == 0 {
			if g.Type == models.OptionGroupSingle {
				g.Max = 1
			} else {
				g.Max = len(g.Options)
			}
		}
		out = append(out, g)
	}
	return out
}

func (s *Store) AddCatalogItem(in CatalogInput) models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := s.state.DefaultTaxRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}
	it := models.CatalogItem{
		ID:           rid(),
		Name:         in.Name,
		Category:     in.Category,
		Price:        in.Price,
		TaxRate:      rate,
		OptionGroups: normalizeOptionGroups(in.OptionGroups),
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	if it.Name == "" {
		it.Name = "Adsız"
	}
	if it.Category == "" {
		it.Category = "Genel"
	}
	s.state.Catalog = append(s.state.Catalog, it)

	if s.persist != nil {
		s.enqueue("catalog put", func() error { return s.persist.PutCatalogItem(it) })
	}
	if s.remote != nil {
		s.enqueue("catalog upsert", func() error { return s.remote.Upsert(ColProducts, it) })
	}
	s.notify()
	return it
}

type CatalogPatch struct {
	Name         *string
	Category     *string
	Price        *float64
	TaxRate      *float64
	OptionGroups []models.OptionGroup
}

func (s *Store) UpdateCatalogItem(id string, patch CatalogPatch) (models.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Catalog {
		if s.state.Catalog[i].ID != id {
			continue
		}
		it := &s.state.Catalog[i]
		if patch.Name != nil {
			it.Name = *patch.Name
		}
		if patch.Category != nil {
			it.Category = *patch.Category
		}
		if patch.Price != nil {
			it.Price = *patch.Price
		}
		if patch.TaxRate != nil {
			it.TaxRate = *patch.TaxRate
		}
		if patch.OptionGroups != nil {
			it.OptionGroups = normalizeOptionGroups(patch.OptionGroups)
		}
		it.UpdatedAt = now()

		updated := *it
		if s.persist != nil {
			s.enqueue("catalog put", func() error { return s.persist.PutCatalogItem(updated) })
		}
		if s.remote != nil {
			s.enqueue("catalog upsert", func() error { return s.remote.Upsert(ColProducts, updated) })
		}
		s.notify()
		return updated, nil
	}
	return models.CatalogItem{}, ErrItemNotFound
}

// DeleteCatalogItem ürünü katalogdan, sepetten ve açık adisyonlardan düşürür.
func (s *Store) DeleteCatalogItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	next := s.state.Catalog[:0]
	for _, it := range s.state.Catalog {
		if it.ID == id {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		return ErrItemNotFound
	}
	s.state.Catalog = next

	cart := s.state.Cart[:0]
	for _, l := range s.state.Cart {
		if l.ItemID != id {
			cart = append(cart, l)
		}
	}
	s.state.Cart = cart

	for i := range s.state.Tickets {
		tk := &s.state.Tickets[i]
		items := tk.Items[:0]
		changed := false
		for _, l := range tk.Items {
			if l.ItemID == id {
				changed = true
				continue
			}
			items = append(items, l)
		}
		if changed {
			tk.Items = items
			tk.UpdatedAt = now()
			s.persistTicket(*tk)
		}
	}

	if s.persist != nil {
		s.enqueue("catalog delete", func() error { return s.persist.DeleteCatalogItem(id) })
	}
	if s.remote != nil {
		s.enqueue("catalog remote delete", func() error { return s.remote.Delete(ColProducts, id) })
	}
	s.notify()
	return nil
}

/* =========================
 * Masa CRUD
 * ========================= */

func (s *Store) AddTable(label string, seats int) models.DiningTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.DiningTable{ID: rid(), Label: label, Seats: seats, CreatedAt: now(), UpdatedAt: now()}
	if t.Label == "" {
		t.Label = "Masa"
	}
	s.state.Tables = append(s.state.Tables, t)

	if s.persist != nil {
		s.enqueue("table put", func() error { return s.persist.PutTable(t) })
	}
	if s.remote != nil {
		s.enqueue("table upsert", func() error { return s.remote.Upsert(ColTables, t) })
	}
	s.notify()
	return t
}

func (s *Store) UpdateTable(id string, label *string, seats *int) (models.DiningTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tables {
		if s.state.Tables[i].ID != id {
			continue
		}
		t := &s.state.Tables[i]
		if label != nil && *label != "" {
			t.Label = *label
		}
		if seats != nil {
			t.Seats = *seats
		}
		t.UpdatedAt = now()

		updated := *t
		if s.persist != nil {
			s.enqueue("table put", func() error { return s.persist.PutTable(updated) })
		}
		if s.remote != nil {
			s.enqueue("table upsert", func() error { return s.remote.Upsert(ColTables, updated) })
		}
		s.notify()
		return updated, nil
	}
	return models.DiningTable{}, ErrTableNotFound
}

// DeleteTable açık adisyonu olan masayı reddeder: ödenmemiş bakiye taşıyan
// masa silinemez.
func (s *Store) DeleteTable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ticketByTable(id) != nil {
		return ErrTableOccupied
	}

	found := false
	next := s.state.Tables[:0]
	for _, t := range s.state.Tables {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return ErrTableNotFound
	}
	s.state.Tables = next
	if s.state.ActiveTableID == id {
		s.state.ActiveTableID = ""
	}

	if s.persist != nil {
		s.enqueue("table delete", func() error { return s.persist.DeleteTable(id) })
	}
	if s.remote != nil {
		s.enqueue("table remote delete", func() error { return s.remote.Delete(ColTables, id) })
	}
	s.notify()
	return nil
}

func (s *Store) SetActiveTable(tableID string) {
	s.mu.Lock()
	s.state.ActiveTableID = tableID
	s.mu.Unlock()
	s.notify()
}

func (s *Store) IsTableOccupied(tableID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ticketByTable(tableID) != nil
}

// TicketByTable masanın açık adisyonunun kopyasını döner.
func (s *Store) TicketByTable(tableID string) (models.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.state.ticketByTable(tableID)
	if tk == nil {
		return models.Ticket{}, false
	}
	out := *tk
	out.Items = cloneLines(tk.Items)
	out.Kitchen = cloneCounts(tk.Kitchen)
	return out, true
}

/* =========================
 * Uzak snapshot reducer'ları
 * ========================= */

// Uzak depo dolu olduğu sürece gelen snapshot yereli komple değiştirir
// (last-applied-wins; katalog düzenlemeleri merge edilmez).

func (s *Store) ApplyRemoteCatalog(rows []models.CatalogItem) {
	s.mu.Lock()
	s.state.Catalog = rows
	s.mu.Unlock()
	if s.persist != nil {
		s.enqueue("catalog mirror", func() error { return s.persist.ReplaceCatalog(rows) })
	}
	s.notify()
}

func (s *Store) ApplyRemoteTables(rows []models.DiningTable) {
	s.mu.Lock()
	s.state.Tables = rows
	s.mu.Unlock()
	if s.persist != nil {
		s.enqueue("tables mirror", func() error { return s.persist.ReplaceTables(rows) })
	}
	s.notify()
}

func (s *Store) ApplyRemoteKitchen(rows []models.KitchenTicket) {
	s.mu.Lock()
	s.state.KitchenQueue = rows
	s.mu.Unlock()
	if s.persist != nil {
		s.enqueue("kitchen mirror", func() error { return s.persist.ReplaceKitchen(rows) })
	}
	s.notify()
}

// ApplyRemoteTicket tek bir masanın adisyonunu uzak kopya ile değiştirir
// (nil: adisyon kapatılmış).
func (s *Store) ApplyRemoteTicket(tableID string, tk *models.Ticket) {
	s.mu.Lock()
	next := s.state.Tickets[:0]
	for _, t := range s.state.Tickets {
		if t.TableID != tableID {
			next = append(next, t)
		}
	}
	if tk != nil {
		safe := *tk
		if safe.Kitchen.Prep == nil || safe.Kitchen.Served == nil {
			safe.Kitchen = models.NewKitchenCounts()
		}
		next = append(next, safe)
	}
	s.state.Tickets = next
	s.mu.Unlock()
	s.notify()
}

// LocalRows bootstrap için yerel koleksiyon satırlarını verir (uzak depo ilk
// temasta boşsa yerel yukarı itilir, yerel silinmez).
func (s *Store) LocalRows(collection string) []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []interface{}
	switch collection {
	case ColProducts:
		for _, r := range s.state.Catalog {
			out = append(out, r)
		}
	case ColTables:
		for _, r := range s.state.Tables {
			out = append(out, r)
		}
	case ColKitchen:
		for _, r := range s.state.KitchenQueue {
			out = append(out, r)
		}
	}
	return out
}

// MarkBootstrapped koleksiyon için tek seferlik bootstrap bayrağını işler;
// ilk çağrıda false döner (bootstrap kararı verilebilir), sonrakiler true.
func (s *Store) MarkBootstrapped(collection string) bool {
	s.bootMu.Lock()
	defer s.bootMu.Unlock()
	if s.bootstrapped[collection] {
		return true
	}
	s.bootstrapped[collection] = true
	return false
}
