package kitchen

import (
	"errors"

	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

type SendRequest struct {
	TableID string `json:"tableId"` // boş = paket servis
}

type StatusRequest struct {
	Status models.KitchenItemStatus `json:"status"` // "pending" | "done"
}

type BumpRequest struct {
	Force *bool `json:"force"`
}

// -------------------------------------------------
// POST /api/kitchen/send
// -------------------------------------------------
func SendHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SendRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		res, err := store.SendToKitchen(body.TableID)
		if errors.Is(err, pos.ErrEmptyCart) {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş, mutfağa gönderilecek bir şey yok")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mutfağa gönderilemedi")
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// GET /api/kitchen/queue
// -------------------------------------------------
func QueueHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, completed := store.KitchenQueueView()
		if active == nil {
			active = []models.KitchenTicket{}
		}
		if completed == nil {
			completed = []models.KitchenTicket{}
		}
		return c.JSON(fiber.Map{
			"active":    active,
			"completed": completed,
		})
	}
}

// -------------------------------------------------
// PUT /api/kitchen/tickets/:id/items/:itemId
// -------------------------------------------------
func ItemStatusHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		err := store.SetKitchenItemStatus(c.Params("id"), c.Params("itemId"), body.Status)
		if errors.Is(err, pos.ErrKitchenNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fiş veya kalem bulunamadı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}
		return c.JSON(fiber.Map{"message": "Durum güncellendi"})
	}
}

// -------------------------------------------------
// POST /api/kitchen/tickets/:id/done — tüm kalemler done
// -------------------------------------------------
func MarkAllDoneHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := store.MarkAllDone(c.Params("id"))
		if errors.Is(err, pos.ErrKitchenNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fiş bulunamadı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş kapatılamadı")
		}
		return c.JSON(fiber.Map{"message": "Fiş tamamlandı"})
	}
}

// -------------------------------------------------
// POST /api/kitchen/tickets/:id/bump
// -------------------------------------------------
func BumpHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BumpRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		err := store.BumpKitchenTicket(c.Params("id"), body.Force)
		if errors.Is(err, pos.ErrKitchenNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fiş bulunamadı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Öncelik değiştirilemedi")
		}
		return c.JSON(fiber.Map{"message": "Öncelik güncellendi"})
	}
}

// -------------------------------------------------
// DELETE /api/kitchen/tickets/:id
// -------------------------------------------------
func DeleteHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := store.DeleteKitchenTicket(c.Params("id"))
		if errors.Is(err, pos.ErrKitchenNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fiş bulunamadı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Fiş silindi"})
	}
}
