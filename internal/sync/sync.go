package sync

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"
)

// Collaborator cihazlar arası senkronizasyonu NATS üzerinden yürütür.
// Her mutasyon pos.<koleksiyon>.upsert / .delete konularına yayınlanır;
// diğer cihazlardan gelen mesajlar yerel aynaya işlenip store'a snapshot
// olarak uygulanır (last-applied-wins). Bağlantı koptuğunda POS tek başına
// çalışmaya devam eder, nats.go yeniden bağlanınca akış kaldığı yerden sürer.
type Collaborator struct {
	nc    *nats.Conn
	store *pos.Store

	mu      sync.Mutex
	catalog map[string]models.CatalogItem
	tables  map[string]models.DiningTable
	kitchen map[string]models.KitchenTicket
	tickets map[string]string // ticket id → table id (silme için)
}

type deleteMsg struct {
	ID string `json:"id"`
}

func subjectUpsert(col string) string { return "pos." + col + ".upsert" }
func subjectDelete(col string) string { return "pos." + col + ".delete" }

func Connect(url string, store *pos.Store) (*Collaborator, error) {
	nc, err := nats.Connect(url,
		nats.Name("hotelpos"),
		nats.NoEcho(),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("[sync] NATS bağlantısı koptu: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[sync] NATS yeniden bağlandı: %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("NATS bağlantısı kurulamadı: %w", err)
	}

	c := &Collaborator{
		nc:      nc,
		store:   store,
		catalog: map[string]models.CatalogItem{},
		tables:  map[string]models.DiningTable{},
		kitchen: map[string]models.KitchenTicket{},
		tickets: map[string]string{},
	}
	c.seedMirrors()

	if err := c.subscribeAll(); err != nil {
		nc.Close()
		return nil, err
	}
	c.bootstrap()
	return c, nil
}

func (c *Collaborator) Close() {
	if c.nc != nil {
		c.nc.Drain()
	}
}

/* =========================
 * pos.Remote
 * ========================= */

func (c *Collaborator) Upsert(collection string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c.mirrorUpsert(doc)
	return c.nc.Publish(subjectUpsert(collection), data)
}

func (c *Collaborator) Delete(collection string, id string) error {
	data, err := json.Marshal(deleteMsg{ID: id})
	if err != nil {
		return err
	}
	c.mirrorDelete(collection, id)
	return c.nc.Publish(subjectDelete(collection), data)
}

// Kendi yayınlarımız NoEcho nedeniyle aboneliğe geri düşmez; ayna burada
// güncellenmezse bir sonraki uzak mesajın snapshot'ı bu cihazın kendi
// düzenlemelerini siler.
func (c *Collaborator) mirrorUpsert(doc interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := doc.(type) {
	case models.CatalogItem:
		c.catalog[v.ID] = v
	case models.DiningTable:
		c.tables[v.ID] = v
	case models.KitchenTicket:
		c.kitchen[v.ID] = v
	case models.Ticket:
		c.tickets[v.ID] = v.TableID
	}
}

func (c *Collaborator) mirrorDelete(collection, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch collection {
	case pos.ColProducts:
		delete(c.catalog, id)
	case pos.ColTables:
		delete(c.tables, id)
	case pos.ColKitchen:
		delete(c.kitchen, id)
	case pos.ColTickets:
		delete(c.tickets, id)
	}
}

/* =========================
 * Gelen akış
 * ========================= */

// seedMirrors aynaları yerel durumla doldurur; ilk uzak mesaj geldiğinde
// snapshot'ın yerel veriyi silmemesi için gereklidir.
func (c *Collaborator) seedMirrors() {
	for _, row := range c.store.LocalRows(pos.ColProducts) {
		if it, ok := row.(models.CatalogItem); ok {
			c.catalog[it.ID] = it
		}
	}
	for _, row := range c.store.LocalRows(pos.ColTables) {
		if t, ok := row.(models.DiningTable); ok {
			c.tables[t.ID] = t
		}
	}
	for _, row := range c.store.LocalRows(pos.ColKitchen) {
		if kt, ok := row.(models.KitchenTicket); ok {
			c.kitchen[kt.ID] = kt
		}
	}
}

// bootstrap ilk bağlantıda yerel satırları yukarı iter; diğer cihazlar boş
// başlamışsa bu cihazın verisiyle dolar. Koleksiyon başına tek sefer.
func (c *Collaborator) bootstrap() {
	for _, col := range []string{pos.ColProducts, pos.ColTables, pos.ColKitchen} {
		if c.store.MarkBootstrapped(col) {
			continue
		}
		for _, row := range c.store.LocalRows(col) {
			if err := c.Upsert(col, row); err != nil {
				log.Printf("[sync] bootstrap yayını başarısız (%s): %v", col, err)
			}
		}
	}
}

func (c *Collaborator) subscribeAll() error {
	subs := []struct {
		subject string
		handler nats.MsgHandler
	}{
		{subjectUpsert(pos.ColProducts), c.onCatalogUpsert},
		{subjectDelete(pos.ColProducts), c.onCatalogDelete},
		{subjectUpsert(pos.ColTables), c.onTableUpsert},
		{subjectDelete(pos.ColTables), c.onTableDelete},
		{subjectUpsert(pos.ColKitchen), c.onKitchenUpsert},
		{subjectDelete(pos.ColKitchen), c.onKitchenDelete},
		{subjectUpsert(pos.ColTickets), c.onTicketUpsert},
		{subjectDelete(pos.ColTickets), c.onTicketDelete},
	}
	for _, s := range subs {
		if _, err := c.nc.Subscribe(s.subject, s.handler); err != nil {
			return fmt.Errorf("abonelik kurulamadı (%s): %w", s.subject, err)
		}
	}
	return nil
}

func (c *Collaborator) onCatalogUpsert(m *nats.Msg) {
	var it models.CatalogItem
	if err := json.Unmarshal(m.Data, &it); err != nil || it.ID == "" {
		log.Printf("[sync] bozuk katalog mesajı: %v", err)
		return
	}
	c.mu.Lock()
	c.catalog[it.ID] = it
	rows := catalogRows(c.catalog)
	c.mu.Unlock()
	c.store.ApplyRemoteCatalog(rows)
}

func (c *Collaborator) onCatalogDelete(m *nats.Msg) {
	var del deleteMsg
	if err := json.Unmarshal(m.Data, &del); err != nil || del.ID == "" {
		return
	}
	c.mu.Lock()
	delete(c.catalog, del.ID)
	rows := catalogRows(c.catalog)
	c.mu.Unlock()
	c.store.ApplyRemoteCatalog(rows)
}

func (c *Collaborator) onTableUpsert(m *nats.Msg) {
	var t models.DiningTable
	if err := json.Unmarshal(m.Data, &t); err != nil || t.ID == "" {
		log.Printf("[sync] bozuk masa mesajı: %v", err)
		return
	}
	c.mu.Lock()
	c.tables[t.ID] = t
	rows := tableRows(c.tables)
	c.mu.Unlock()
	c.store.ApplyRemoteTables(rows)
}

func (c *Collaborator) onTableDelete(m *nats.Msg) {
	var del deleteMsg
	if err := json.Unmarshal(m.Data, &del); err != nil || del.ID == "" {
		return
	}
	c.mu.Lock()
	delete(c.tables, del.ID)
	rows := tableRows(c.tables)
	c.mu.Unlock()
	c.store.ApplyRemoteTables(rows)
}

func (c *Collaborator) onKitchenUpsert(m *nats.Msg) {
	var kt models.KitchenTicket
	if err := json.Unmarshal(m.Data, &kt); err != nil || kt.ID == "" {
		log.Printf("[sync] bozuk mutfak mesajı: %v", err)
		return
	}
	c.mu.Lock()
	c.kitchen[kt.ID] = kt
	rows := kitchenRows(c.kitchen)
	c.mu.Unlock()
	c.store.ApplyRemoteKitchen(rows)
}

func (c *Collaborator) onKitchenDelete(m *nats.Msg) {
	var del deleteMsg
	if err := json.Unmarshal(m.Data, &del); err != nil || del.ID == "" {
		return
	}
	c.mu.Lock()
	delete(c.kitchen, del.ID)
	rows := kitchenRows(c.kitchen)
	c.mu.Unlock()
	c.store.ApplyRemoteKitchen(rows)
}

func (c *Collaborator) onTicketUpsert(m *nats.Msg) {
	var tk models.Ticket
	if err := json.Unmarshal(m.Data, &tk); err != nil || tk.ID == "" || tk.TableID == "" {
		log.Printf("[sync] bozuk adisyon mesajı: %v", err)
		return
	}
	c.mu.Lock()
	c.tickets[tk.ID] = tk.TableID
	c.mu.Unlock()
	c.store.ApplyRemoteTicket(tk.TableID, &tk)
}

func (c *Collaborator) onTicketDelete(m *nats.Msg) {
	var del deleteMsg
	if err := json.Unmarshal(m.Data, &del); err != nil || del.ID == "" {
		return
	}
	c.mu.Lock()
	tableID, ok := c.tickets[del.ID]
	delete(c.tickets, del.ID)
	c.mu.Unlock()
	if ok {
		c.store.ApplyRemoteTicket(tableID, nil)
	}
}

func catalogRows(m map[string]models.CatalogItem) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func tableRows(m map[string]models.DiningTable) []models.DiningTable {
	out := make([]models.DiningTable, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func kitchenRows(m map[string]models.KitchenTicket) []models.KitchenTicket {
	out := make([]models.KitchenTicket, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
