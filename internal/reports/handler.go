package reports

import (
	"errors"

	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

func parseRange(c *fiber.Ctx) (int64, int64) {
	start := int64(c.QueryInt("start", 0))
	end := int64(c.QueryInt("end", 0))
	if end == 0 {
		end = 1<<62 - 1
	}
	return start, end
}

// -------------------------------------------------
// GET /api/reports/summary?start=<ms>&end=<ms>
// -------------------------------------------------
func SummaryHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end := parseRange(c)
		orders, err := store.OrdersInRange(start, end)
		if errors.Is(err, pos.ErrInvalidRange) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih aralığı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}
		return c.JSON(pos.SumOrders(orders))
	}
}

// -------------------------------------------------
// GET /api/reports/items?start=<ms>&end=<ms>
// -------------------------------------------------
func ItemSalesHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end := parseRange(c)
		orders, err := store.OrdersInRange(start, end)
		if errors.Is(err, pos.ErrInvalidRange) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih aralığı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}
		return c.JSON(pos.SalesByItem(orders))
	}
}

// -------------------------------------------------
// GET /api/reports/categories?start=<ms>&end=<ms>
// -------------------------------------------------
func CategorySalesHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end := parseRange(c)
		orders, err := store.OrdersInRange(start, end)
		if errors.Is(err, pos.ErrInvalidRange) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih aralığı")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}
		return c.JSON(store.SalesByCategory(orders))
	}
}
