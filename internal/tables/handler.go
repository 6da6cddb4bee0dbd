package tables

import (
	"errors"

	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
)

type TableRequest struct {
	Label string `json:"label"`
	Seats *int   `json:"seats"`
}

type GuestNameRequest struct {
	Name string `json:"name"`
}

type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type TableView struct {
	models.DiningTable
	Occupied  bool   `json:"occupied"`
	GuestName string `json:"guestName,omitempty"`
	LineCount int    `json:"lineCount"`
}

// -------------------------------------------------
// GET /api/tables
// -------------------------------------------------
func ListHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := store.Snapshot()

		byTable := map[string]models.Ticket{}
		for _, tk := range st.Tickets {
			byTable[tk.TableID] = tk
		}

		out := make([]TableView, 0, len(st.Tables))
		for _, t := range st.Tables {
			view := TableView{DiningTable: t}
			if tk, ok := byTable[t.ID]; ok {
				view.Occupied = true
				view.GuestName = tk.GuestName
				view.LineCount = len(tk.Items)
			}
			out = append(out, view)
		}
		return c.JSON(fiber.Map{
			"tables":        out,
			"activeTableId": st.ActiveTableID,
		})
	}
}

// -------------------------------------------------
// POST /api/tables
// -------------------------------------------------
func CreateHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		seats := 4
		if body.Seats != nil && *body.Seats > 0 {
			seats = *body.Seats
		}
		t := store.AddTable(body.Label, seats)
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// -------------------------------------------------
// PUT /api/tables/:id
// -------------------------------------------------
func UpdateHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body TableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		var label *string
		if body.Label != "" {
			label = &body.Label
		}
		t, err := store.UpdateTable(id, label, body.Seats)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}
		return c.JSON(t)
	}
}

// -------------------------------------------------
// DELETE /api/tables/:id
// -------------------------------------------------
func DeleteHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		switch err := store.DeleteTable(id); {
		case errors.Is(err, pos.ErrTableOccupied):
			return fiber.NewError(fiber.StatusConflict, "Açık adisyonu olan masa silinemez")
		case errors.Is(err, pos.ErrTableNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Masa silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Masa silindi"})
	}
}

// -------------------------------------------------
// GET /api/tables/:id/ticket
// -------------------------------------------------
func TicketHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		tk, ok := store.TicketByTable(id)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Masada açık adisyon yok")
		}
		return c.JSON(tk)
	}
}

// -------------------------------------------------
// GET /api/tables/:id/kitchen-counts
// -------------------------------------------------
func KitchenCountsHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		return c.JSON(store.KitchenCountsForTable(id))
	}
}

// -------------------------------------------------
// PUT /api/tables/:id/guest-name
// -------------------------------------------------
func GuestNameHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body GuestNameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := store.SetGuestName(id, body.Name); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Misafir adı güncellendi"})
	}
}

// -------------------------------------------------
// POST /api/tables/:id/save — sepet adisyona KOMPLE yazılır
// -------------------------------------------------
func SaveCartHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := store.SaveCartToTable(id); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Adisyon kaydedildi"})
	}
}

// -------------------------------------------------
// POST /api/tables/:id/park — sepet adisyonla birleştirilir, sepet boşalır
// -------------------------------------------------
func ParkCartHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := store.ParkCartToTable(id); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
		}
		return c.JSON(fiber.Map{"message": "Sepet masaya park edildi"})
	}
}

// -------------------------------------------------
// POST /api/tables/:id/load — adisyon sepete kopyalanır
// -------------------------------------------------
func LoadTicketHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := store.LoadTableToCart(id); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masada açık adisyon yok")
		}
		return c.JSON(fiber.Map{"message": "Adisyon sepete yüklendi"})
	}
}

// -------------------------------------------------
// DELETE /api/tables/:id/ticket
// -------------------------------------------------
func ClearTicketHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := store.ClearTicket(id); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Masada açık adisyon yok")
		}
		return c.JSON(fiber.Map{"message": "Adisyon silindi"})
	}
}

// -------------------------------------------------
// POST /api/tables/transfer
// -------------------------------------------------
func TransferHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		switch err := store.TransferTicket(body.From, body.To); {
		case errors.Is(err, pos.ErrSameTable):
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak ve hedef masa aynı olamaz")
		case errors.Is(err, pos.ErrTableNotFound):
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak ve hedef masa zorunlu")
		case errors.Is(err, pos.ErrTicketNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Kaynak masada açık adisyon yok")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Adisyon taşınamadı")
		}
		return c.JSON(fiber.Map{"message": "Adisyon taşındı"})
	}
}

// -------------------------------------------------
// PUT /api/tables/active
// -------------------------------------------------
func SetActiveHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			TableID string `json:"tableId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		store.SetActiveTable(body.TableID)
		return c.JSON(fiber.Map{"message": "Aktif masa güncellendi"})
	}
}
