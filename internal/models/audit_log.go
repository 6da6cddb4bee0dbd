package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi kullanıcı?
	UserID   string `gorm:"size:36" json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // denormalize

	// Hangi entity? (ör: "order", "catalog_item", "shift", "backup")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:36;index" json:"entity_id"`

	// create/update/delete
	Action AuditAction `gorm:"size:20" json:"action"`

	// Küçük bir özet
	Description string `gorm:"size:255" json:"description"`

	// Sonraki hal (JSON)
	AfterData string `gorm:"type:jsonb" json:"after_data"`
}
