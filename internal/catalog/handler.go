package catalog

import (
	"fmt"

	"hotelpos-backend/internal/audit"
	"hotelpos-backend/internal/auth"
	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

type ItemRequest struct {
	Name         string               `json:"name"`
	Category     string               `json:"category"`
	Price        *float64             `json:"price"`
	TaxRate      *float64             `json:"taxRate"`
	OptionGroups []models.OptionGroup `json:"optionGroups"`
}

// -------------------------------------------------
// GET /api/catalog
// -------------------------------------------------
func ListHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := store.Snapshot()
		return c.JSON(fiber.Map{
			"items":    st.Catalog,
			"currency": st.Currency,
		})
	}
}

// -------------------------------------------------
// POST /api/catalog
// -------------------------------------------------
func CreateHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Price == nil || *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat zorunlu ve negatif olamaz")
		}

		it := store.AddCatalogItem(pos.CatalogInput{
			Name:         body.Name,
			Category:     body.Category,
			Price:        *body.Price,
			TaxRate:      body.TaxRate,
			OptionGroups: body.OptionGroups,
		})

		if cashier := auth.CurrentCashier(c); cashier != nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      cashier.ID,
				UserName:    cashier.Name,
				EntityType:  "catalog_item",
				EntityID:    it.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ürün eklendi: %s", it.Name),
				After:       it,
			})
		}
		return c.Status(fiber.StatusCreated).JSON(it)
	}
}

// -------------------------------------------------
// PUT /api/catalog/:id
// -------------------------------------------------
func UpdateHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		patch := pos.CatalogPatch{
			Price:        body.Price,
			TaxRate:      body.TaxRate,
			OptionGroups: body.OptionGroups,
		}
		if body.Name != "" {
			patch.Name = &body.Name
		}
		if body.Category != "" {
			patch.Category = &body.Category
		}

		it, err := store.UpdateCatalogItem(id, patch)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if cashier := auth.CurrentCashier(c); cashier != nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      cashier.ID,
				UserName:    cashier.Name,
				EntityType:  "catalog_item",
				EntityID:    it.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Ürün güncellendi: %s", it.Name),
				After:       it,
			})
		}
		return c.JSON(it)
	}
}

// -------------------------------------------------
// DELETE /api/catalog/:id
// -------------------------------------------------
func DeleteHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := store.DeleteCatalogItem(id); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if cashier := auth.CurrentCashier(c); cashier != nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      cashier.ID,
				UserName:    cashier.Name,
				EntityType:  "catalog_item",
				EntityID:    id,
				Action:      models.AuditActionDelete,
				Description: "Ürün silindi",
			})
		}
		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}
