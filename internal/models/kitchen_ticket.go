package models

import (
	"database/sql/driver"
	"time"
)

type KitchenItemStatus string

const (
	KitchenItemPending KitchenItemStatus = "pending"
	KitchenItemDone    KitchenItemStatus = "done"
)

type KitchenItem struct {
	ID       string            `json:"id"`
	LineID   string            `json:"lineId"`
	ShapeKey string            `json:"shapeKey"` // mutfak sayaçlarının anahtarı
	Name     string            `json:"name"`
	ModsText string            `json:"modsText"`
	Qty      int               `json:"qty"`
	Status   KitchenItemStatus `json:"status"`
}

type KitchenItemList []KitchenItem

func (l KitchenItemList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *KitchenItemList) Scan(value interface{}) error {
	*l = KitchenItemList{}
	return jsonScan(l, value)
}

// Tek bir "mutfağa gönder" aksiyonunun kaydı. Sonraki gönderimlerle asla
// birleştirilmez; masa adisyonundan bağımsız silinir.
type KitchenTicket struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	TableID   string          `gorm:"size:36;index" json:"tableId"` // boş = paket servis
	Label     string          `gorm:"size:60;not null" json:"label"`
	Items     KitchenItemList `gorm:"type:text" json:"items"`
	Priority  int             `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Tüm kalemler done ise bilet tamamlanmış sayılır.
func (t KitchenTicket) Completed() bool {
	if len(t.Items) == 0 {
		return false
	}
	for _, it := range t.Items {
		if it.Status != KitchenItemDone {
			return false
		}
	}
	return true
}
