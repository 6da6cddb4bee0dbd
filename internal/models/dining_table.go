package models

import "time"

type DiningTable struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Label     string    `gorm:"size:60;not null" json:"label"`
	Seats     int       `gorm:"not null" json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
