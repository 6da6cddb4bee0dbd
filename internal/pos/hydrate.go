package pos

import (
	"context"
	"log"
	"time"

	"hotelpos-backend/internal/models"
)

// Durable store bu süre içinde cevap vermezse seed verisine düşülür;
// açılış asla süresiz bloklanmaz.
const hydrateTimeout = 4 * time.Second

// Hydrate durumu durable store'dan yükler. Yükleme başarısız olur veya
// zaman aşımına uğrarsa yerleşik seed verisiyle "degraded" modda devam
// edilir; hata çağırana dönmez, bayraktan okunur.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.state.Hydrated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if s.persist == nil {
		s.applyFallback("durable store yok")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, hydrateTimeout)
	defer cancel()

	type result struct {
		ds  *Dataset
		err error
	}
	ch := make(chan result, 1)
	go func() {
		ds, err := s.persist.LoadAll(ctx)
		ch <- result{ds, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			log.Printf("[pos] hidrasyon hatası: %v", r.err)
			s.applyFallback(r.err.Error())
			return
		}
		s.applyDataset(r.ds)
	case <-ctx.Done():
		log.Println("[pos] hidrasyon watchdog devreye girdi, seed ile devam")
		s.applyFallback("watchdog timeout")
	}
}

func (s *Store) applyDataset(ds *Dataset) {
	s.mu.Lock()

	s.state.Catalog = ds.Catalog
	s.state.Tables = ds.Tables
	s.state.Tickets = ds.Tickets
	s.state.Orders = ds.Orders
	s.state.KitchenQueue = ds.Kitchen

	// Eski kayıtlarda sayaç haritaları eksik olabilir
	for i := range s.state.Tickets {
		tk := &s.state.Tickets[i]
		if tk.Kitchen.Prep == nil || tk.Kitchen.Served == nil {
			tk.Kitchen = models.NewKitchenCounts()
		}
	}

	seeded := false
	if len(s.state.Catalog) == 0 && len(s.state.Tables) == 0 {
		s.state.Catalog = seedCatalog()
		s.state.Tables = seedTables()
		seeded = true
	}

	s.state.Hydrated = true
	s.state.Degraded = false
	s.state.HydrateErr = ""

	catalog := append([]models.CatalogItem(nil), s.state.Catalog...)
	tables := append([]models.DiningTable(nil), s.state.Tables...)
	s.mu.Unlock()

	if seeded && s.persist != nil {
		s.enqueue("seed catalog", func() error { return s.persist.ReplaceCatalog(catalog) })
		s.enqueue("seed tables", func() error { return s.persist.ReplaceTables(tables) })
	}
	s.notify()
}

func (s *Store) applyFallback(reason string) {
	s.mu.Lock()
	s.state.Catalog = seedCatalog()
	s.state.Tables = seedTables()
	s.state.Tickets = nil
	s.state.Orders = nil
	s.state.KitchenQueue = nil
	s.state.Hydrated = true
	s.state.Degraded = true
	s.state.HydrateErr = reason
	s.mu.Unlock()
	s.notify()
}

// ReplaceDataset yedekten geri yükleme sonrası bellek içi durumu toptan
// değiştirir (sepet ve ayarlamalar sıfırlanır).
func (s *Store) ReplaceDataset(ds *Dataset) {
	s.mu.Lock()
	s.state.Catalog = ds.Catalog
	s.state.Tables = ds.Tables
	s.state.Tickets = ds.Tickets
	s.state.Orders = ds.Orders
	s.state.KitchenQueue = ds.Kitchen
	s.state.Cart = nil
	s.state.ActiveTableID = ""
	s.state.Discount = Adjustment{Type: AdjustmentNone}
	s.state.ServiceChargePct = 0
	s.state.Tip = Adjustment{Type: AdjustmentNone}
	for i := range s.state.Tickets {
		tk := &s.state.Tickets[i]
		if tk.Kitchen.Prep == nil || tk.Kitchen.Served == nil {
			tk.Kitchen = models.NewKitchenCounts()
		}
	}
	s.mu.Unlock()
	s.notify()
}
