package pos

import (
	"context"

	"hotelpos-backend/internal/models"
)

// Dataset durable store'daki POS koleksiyonlarının tam görüntüsüdür
// (hidrasyon ve yedek geri yükleme için).
type Dataset struct {
	Catalog []models.CatalogItem
	Tables  []models.DiningTable
	Tickets []models.Ticket
	Orders  []models.Order
	Kitchen []models.KitchenTicket
}

// Persister yerel durable store sözleşmesi. Tüm yazmalar fire-and-forget
// kuyruğundan çağrılır: hata dönse bile mutasyon çağıran açısından
// başarılıdır, hata yalnızca loglanır.
type Persister interface {
	LoadAll(ctx context.Context) (*Dataset, error)

	PutCatalogItem(item models.CatalogItem) error
	DeleteCatalogItem(id string) error

	PutTable(t models.DiningTable) error
	DeleteTable(id string) error

	PutTicket(t models.Ticket) error
	DeleteTicket(id string) error

	PutKitchenTicket(t models.KitchenTicket) error
	DeleteKitchenTicket(id string) error

	PutOrder(o models.Order) error

	// Uzak snapshot aynası: koleksiyonu temizleyip toptan yazar.
	ReplaceCatalog(rows []models.CatalogItem) error
	ReplaceTables(rows []models.DiningTable) error
	ReplaceKitchen(rows []models.KitchenTicket) error
}

// Remote uzak doküman deposu sözleşmesi (eventual consistent, opak).
type Remote interface {
	Upsert(collection string, doc interface{}) error
	Delete(collection string, id string) error
}

// Koleksiyon adları tek yerde (uzak depo ve yedek zarfı bunları kullanır).
const (
	ColProducts = "products"
	ColTables   = "tables"
	ColTickets  = "tickets"
	ColKitchen  = "kitchen"
	ColOrders   = "orders"
)
