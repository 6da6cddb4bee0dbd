package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cashier"
	RoleKitchen UserRole = "kitchen"
)

type User struct {
	ID        string   `gorm:"primaryKey;size:36"`
	Name      string   `gorm:"size:60;not null"`
	Role      UserRole `gorm:"size:20;not null"`
	PinHash   string   `gorm:"size:100;not null"` // bcrypt
	CreatedAt time.Time
	UpdatedAt time.Time
}
