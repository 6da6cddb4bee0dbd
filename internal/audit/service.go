package audit

import (
	"encoding/json"
	"fmt"

	"hotelpos-backend/internal/database"
	"hotelpos-backend/internal/models"
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string // "order", "catalog_item", "table", "shift", "backup" ...
	EntityID    string
	Action      models.AuditAction
	Description string
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	afterStr := "null"
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}
