package models

import (
	"database/sql/driver"
	"time"
)

type OptionGroupType string

const (
	OptionGroupSingle OptionGroupType = "single"
	OptionGroupMulti  OptionGroupType = "multi"
)

type Option struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
}

type OptionGroup struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Type     OptionGroupType `json:"type"`
	Required bool            `json:"required"`
	Min      int             `json:"min"` // required ise varsayılan 1, değilse 0
	Max      int             `json:"max"` // single için varsayılan 1
	Options  []Option        `json:"options"`
}

type OptionGroupList []OptionGroup

func (l OptionGroupList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *OptionGroupList) Scan(value interface{}) error {
	*l = OptionGroupList{}
	return jsonScan(l, value)
}

// Siparişler denormalize kopya sakladığı için sonradan yapılan fiyat
// değişiklikleri eski siparişleri etkilemez.
type CatalogItem struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Category     string          `gorm:"size:60;not null;index" json:"category"`
	Price        float64         `gorm:"not null" json:"price"`
	TaxRate      float64         `gorm:"not null" json:"taxRate"` // oran, örn. 0.07 (vergi dahil fiyat)
	OptionGroups OptionGroupList `gorm:"type:text" json:"optionGroups"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
