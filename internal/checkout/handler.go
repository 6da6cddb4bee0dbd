package checkout

import (
	"errors"
	"fmt"

	"hotelpos-backend/internal/audit"
	"hotelpos-backend/internal/auth"
	"hotelpos-backend/internal/backup"
	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	Method   models.PaymentMethod `json:"method"`   // "cash" | "card"
	Tendered *float64             `json:"tendered"` // nakit için zorunlu
	TableID  string               `json:"tableId"`  // boş = paket servis
}

// -------------------------------------------------
// POST /api/checkout
// -------------------------------------------------
func CheckoutHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Method != "" && body.Method != models.PaymentCash && body.Method != models.PaymentCard {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ödeme yöntemi (cash|card)")
		}

		cashier := auth.CurrentCashier(c)
		order, err := store.Checkout(pos.CheckoutInput{
			Method:   body.Method,
			Tendered: body.Tendered,
			TableID:  body.TableID,
			Cashier:  cashier,
		})
		switch {
		case errors.Is(err, pos.ErrEmptyCart):
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
		case errors.Is(err, pos.ErrTenderedRequired):
			return fiber.NewError(fiber.StatusBadRequest, "Nakit ödemede alınan tutar zorunlu")
		case errors.Is(err, pos.ErrInsufficientCash):
			return fiber.NewError(fiber.StatusBadRequest, "Alınan tutar toplamı karşılamıyor")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme tamamlanamadı")
		}

		if cashier != nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      cashier.ID,
				UserName:    cashier.Name,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Satış: %.2f (%s)", order.Total, order.Payment.Method),
				After:       order,
			})
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// -------------------------------------------------
// GET /api/orders/:id — fiş yeniden basımı buradan okur
// -------------------------------------------------
func OrderHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, ok := store.OrderByID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		return c.JSON(order)
	}
}

// -------------------------------------------------
// GET /api/orders?start=<ms>&end=<ms> — aralık dışa aktarması, yedek zarfıyla
// aynı meta bloğunu taşır
// -------------------------------------------------
func ListOrdersHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := int64(c.QueryInt("start", 0))
		end := int64(c.QueryInt("end", 0))
		if end == 0 {
			// Sınır verilmemişse tüm kayıtlar
			end = 1<<62 - 1
		}

		orders, err := store.OrdersInRange(start, end)
		if errors.Is(err, pos.ErrInvalidRange) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih aralığı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler okunamadı")
		}
		return c.JSON(fiber.Map{
			"meta":   backup.NewRangeMeta(start, end),
			"orders": orders,
		})
	}
}
