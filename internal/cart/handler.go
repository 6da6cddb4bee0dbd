package cart

import (
	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

type AddItemRequest struct {
	ItemID string            `json:"itemId"`
	Qty    int               `json:"qty"`
	Mods   []models.Modifier `json:"mods"`
}

type QtyRequest struct {
	Qty int `json:"qty"`
}

type AdjustmentRequest struct {
	Type  string  `json:"type"` // "percent" | "amount"
	Value float64 `json:"value"`
}

type ServiceChargeRequest struct {
	Pct float64 `json:"pct"`
}

// -------------------------------------------------
// GET /api/cart — satırlar + fiyat dökümü
// -------------------------------------------------
func GetHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := store.Snapshot()
		return c.JSON(fiber.Map{
			"lines":         store.CartLines(),
			"breakdown":     store.Breakdown(),
			"activeTableId": st.ActiveTableID,
			"currency":      st.Currency,
		})
	}
}

// -------------------------------------------------
// POST /api/cart/items
// -------------------------------------------------
func AddItemHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ItemID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itemId zorunlu")
		}

		line, err := store.AddItem(body.ItemID, body.Qty, body.Mods)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(line)
	}
}

// -------------------------------------------------
// POST /api/cart/lines/:lineId/increment
// POST /api/cart/lines/:lineId/decrement
// -------------------------------------------------
func IncrementHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Increment(c.Params("lineId")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satır bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Adet artırıldı"})
	}
}

func DecrementHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Decrement(c.Params("lineId")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satır bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Adet azaltıldı"})
	}
}

// -------------------------------------------------
// PUT /api/cart/lines/:lineId
// -------------------------------------------------
func ChangeQtyHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QtyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := store.ChangeQty(c.Params("lineId"), body.Qty); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satır bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Adet güncellendi"})
	}
}

// -------------------------------------------------
// DELETE /api/cart/lines/:lineId
// -------------------------------------------------
func RemoveLineHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.RemoveLine(c.Params("lineId")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satır bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Satır silindi"})
	}
}

// -------------------------------------------------
// DELETE /api/cart
// -------------------------------------------------
func ClearHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store.ClearCart()
		return c.JSON(fiber.Map{"message": "Sepet boşaltıldı"})
	}
}

/* =========================
 * Sipariş seviyesi ayarlamalar
 * ========================= */

// PUT /api/cart/discount
func SetDiscountHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdjustmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		switch body.Type {
		case "percent":
			store.SetDiscountPercent(body.Value)
		case "amount":
			store.SetDiscountAmount(body.Value)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tip (percent|amount)")
		}
		return c.JSON(store.Breakdown())
	}
}

// DELETE /api/cart/discount
func ClearDiscountHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store.ClearDiscount()
		return c.JSON(store.Breakdown())
	}
}

// PUT /api/cart/service-charge
func SetServiceChargeHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ServiceChargeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		store.SetServiceChargePct(body.Pct)
		return c.JSON(store.Breakdown())
	}
}

// PUT /api/cart/tip
func SetTipHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdjustmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		switch body.Type {
		case "percent":
			store.SetTipPercent(body.Value)
		case "amount":
			store.SetTipAmount(body.Value)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tip (percent|amount)")
		}
		return c.JSON(store.Breakdown())
	}
}

// DELETE /api/cart/tip
func ClearTipHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store.ClearTip()
		return c.JSON(store.Breakdown())
	}
}
