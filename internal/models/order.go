package models

import (
	"database/sql/driver"
	"time"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Satış anındaki çözülmüş satır kopyası; katalog referansı değil.
type OrderItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     float64      `json:"price"`
	Qty       int          `json:"qty"`
	Mods      ModifierList `json:"mods"`
	LineTotal float64      `json:"lineTotal"`
}

type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *OrderItemList) Scan(value interface{}) error {
	*l = OrderItemList{}
	return jsonScan(l, value)
}

type Payment struct {
	Method   PaymentMethod `json:"method"`
	Amount   float64       `json:"amount"`
	Tendered *float64      `json:"tendered"`
	Change   float64       `json:"change"`
}

func (p Payment) Value() (driver.Value, error)  { return jsonValue(p) }
func (p *Payment) Scan(value interface{}) error { return jsonScan(p, value) }

type AdjustmentSnapshot struct {
	Type   string  `json:"type"` // none | percent | amount
	Value  float64 `json:"value"`
	Amount float64 `json:"amount"` // hesaplanan brüt tutar
}

type OrderAdjustments struct {
	Discount      AdjustmentSnapshot `json:"discount"`
	ServiceCharge AdjustmentSnapshot `json:"serviceCharge"`
	Tip           AdjustmentSnapshot `json:"tip"`
}

func (a OrderAdjustments) Value() (driver.Value, error)  { return jsonValue(a) }
func (a *OrderAdjustments) Scan(value interface{}) error { return jsonScan(a, value) }

type CashierInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (c CashierInfo) Value() (driver.Value, error)  { return jsonValue(c) }
func (c *CashierInfo) Scan(value interface{}) error { return jsonScan(c, value) }

// Kesinleşmiş satış kaydı. Checkout dışında hiçbir yerde oluşturulmaz ve
// oluşturulduktan sonra değiştirilmez; fiş yeniden basımı olduğu gibi okur.
type Order struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	TableID     string           `gorm:"size:36;index" json:"tableId"` // boş = paket servis
	Items       OrderItemList    `gorm:"type:text" json:"items"`
	Subtotal    float64          `gorm:"not null" json:"subtotal"`
	Tax         float64          `gorm:"not null" json:"tax"`
	Total       float64          `gorm:"not null" json:"total"`
	Payment     Payment          `gorm:"type:text" json:"payment"`
	Adjustments OrderAdjustments `gorm:"type:text" json:"adjustments"`
	Cashier     CashierInfo      `gorm:"type:text" json:"cashier"`
	CreatedAt   time.Time        `gorm:"index" json:"createdAt"`
}
