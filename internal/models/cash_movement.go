package models

import "time"

type CashDirection string

const (
	CashIn  CashDirection = "in"
	CashOut CashDirection = "out"
)

// Vardiya içi nakit giriş/çıkış hareketi (kasa fazlası, masraf ödemesi vs.).
type CashMovement struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	ShiftID   string        `gorm:"size:36;index;not null" json:"shiftId"`
	Type      CashDirection `gorm:"size:10;not null" json:"type"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Reason    string        `gorm:"size:255" json:"reason"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
}
