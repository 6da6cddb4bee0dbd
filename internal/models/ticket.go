package models

import (
	"database/sql/driver"
	"time"
)

// Masa başına prep/served sayaçları. Anahtar: satır şekli (pos.ShapeKey).
// Tek temsil adisyonun içinde tutulur; ayrıca paralel bir harita yoktur.
type KitchenCounts struct {
	Prep   map[string]int `json:"prep"`
	Served map[string]int `json:"served"`
}

func NewKitchenCounts() KitchenCounts {
	return KitchenCounts{Prep: map[string]int{}, Served: map[string]int{}}
}

func (k KitchenCounts) Value() (driver.Value, error) { return jsonValue(k) }
func (k *KitchenCounts) Scan(value interface{}) error {
	*k = NewKitchenCounts()
	if err := jsonScan(k, value); err != nil {
		return err
	}
	if k.Prep == nil {
		k.Prep = map[string]int{}
	}
	if k.Served == nil {
		k.Served = map[string]int{}
	}
	return nil
}

// Açık (ödenmemiş) masa adisyonu. Masa başına en fazla bir tane olabilir.
type Ticket struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	TableID   string        `gorm:"size:36;uniqueIndex;not null" json:"tableId"`
	GuestName string        `gorm:"size:60" json:"guestName"`
	Items     OrderLineList `gorm:"type:text" json:"items"`
	Kitchen   KitchenCounts `gorm:"type:text" json:"kitchen"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
