package models

import "time"

// Kasiyer vardiyası. Kullanıcı başına aynı anda en fazla bir açık vardiya.
type Shift struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	UserID         string `gorm:"size:36;index;not null" json:"userId"`
	UserName       string `gorm:"size:60;not null" json:"userName"`
	OpenedAt       time.Time  `gorm:"index;not null" json:"openedAt"`
	OpeningFloat   float64    `gorm:"not null" json:"openingFloat"`
	NoteOpen       string     `gorm:"size:255" json:"noteOpen"`
	ClosedAt       *time.Time `gorm:"index" json:"closedAt"`
	ClosingCounted *float64   `json:"closingCounted"`
	SalesGross     float64    `json:"salesGross"`
	CashSales      float64    `json:"cashSales"`
	CardSales      float64    `json:"cardSales"`
	CashIn         float64    `json:"cashIn"`
	CashOut        float64    `json:"cashOut"`
	NoteClose      string     `gorm:"size:255" json:"noteClose"`
}
