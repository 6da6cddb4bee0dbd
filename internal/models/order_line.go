package models

import "database/sql/driver"

// Seçilmiş bir modifier'ın satır üzerindeki kopyası. GroupID+OptionID mutfak
// sayaç anahtarında, Name+PriceDelta sepet birleştirme karşılaştırmasında
// kullanılır.
type Modifier struct {
	GroupID    string  `json:"groupId"`
	OptionID   string  `json:"optionId"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
}

type ModifierList []Modifier

func (l ModifierList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *ModifierList) Scan(value interface{}) error {
	*l = ModifierList{}
	return jsonScan(l, value)
}

// Sepet / adisyon satırı.
type OrderLine struct {
	ID     string       `json:"id"`
	ItemID string       `json:"itemId"`
	Qty    int          `json:"qty"`
	Mods   ModifierList `json:"mods"`
}

type OrderLineList []OrderLine

func (l OrderLineList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *OrderLineList) Scan(value interface{}) error {
	*l = OrderLineList{}
	return jsonScan(l, value)
}
