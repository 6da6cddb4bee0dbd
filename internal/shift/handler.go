package shift

import (
	"errors"
	"fmt"
	"time"

	"hotelpos-backend/internal/audit"
	"hotelpos-backend/internal/auth"
	"hotelpos-backend/internal/database"
	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OpenShiftRequest struct {
	OpeningFloat float64 `json:"openingFloat"`
	Note         string  `json:"note"`
}

type CloseShiftRequest struct {
	Counted float64 `json:"counted"`
	Note    string  `json:"note"`
}

type CashMovementRequest struct {
	Type   models.CashDirection `json:"type"` // "in" | "out"
	Amount float64              `json:"amount"`
	Reason string               `json:"reason"`
}

// noOpenShift sorgu hatasını sınıflandırır: kayıt yok mu, gerçek DB hatası
// mı. Geçici bir bağlantı hatası "vardiya yok" sayılırsa aynı kullanıcıya
// ikinci bir açık vardiya açılabilir.
func noOpenShift(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}

// openShiftFor kullanıcının açık vardiyasını döner; açık vardiya yoksa
// (nil, nil), sorgu hatasında (nil, err).
func openShiftFor(userID string) (*models.Shift, error) {
	var sh models.Shift
	err := database.DB.Where("user_id = ? AND closed_at IS NULL", userID).First(&sh).Error
	none, err := noOpenShift(err)
	if err != nil {
		return nil, err
	}
	if none {
		return nil, nil
	}
	return &sh, nil
}

// -------------------------------------------------
// POST /api/shifts/open
// -------------------------------------------------
func OpenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier := auth.CurrentCashier(c)
		if cashier == nil {
			return fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
		}

		var body OpenShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.OpeningFloat < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Açılış kasası negatif olamaz")
		}

		existing, err := openShiftFor(cashier.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya durumu sorgulanamadı")
		}
		if existing != nil {
			return fiber.NewError(fiber.StatusConflict, "Zaten açık bir vardiyanız var")
		}

		sh := models.Shift{
			ID:           uuid.NewString(),
			UserID:       cashier.ID,
			UserName:     cashier.Name,
			OpenedAt:     time.Now(),
			OpeningFloat: body.OpeningFloat,
			NoteOpen:     body.Note,
		}
		if err := database.DB.Create(&sh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya açılamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      cashier.ID,
			UserName:    cashier.Name,
			EntityType:  "shift",
			EntityID:    sh.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Vardiya açıldı (kasa: %.2f)", sh.OpeningFloat),
			After:       sh,
		})
		return c.Status(fiber.StatusCreated).JSON(sh)
	}
}

// -------------------------------------------------
// POST /api/shifts/close — satış özetleri kapanış anında dondurulur
// -------------------------------------------------
func CloseHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier := auth.CurrentCashier(c)
		if cashier == nil {
			return fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
		}

		var body CloseShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		sh, err := openShiftFor(cashier.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya durumu sorgulanamadı")
		}
		if sh == nil {
			return fiber.NewError(fiber.StatusNotFound, "Açık vardiya bulunamadı")
		}

		now := time.Now()
		orders, err := store.OrdersInRange(sh.OpenedAt.UnixMilli(), now.UnixMilli())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar okunamadı")
		}
		for _, o := range orders {
			sh.SalesGross += o.Total
			switch o.Payment.Method {
			case models.PaymentCash:
				sh.CashSales += o.Total
			case models.PaymentCard:
				sh.CardSales += o.Total
			}
		}
		sh.SalesGross = pos.Round2(sh.SalesGross)
		sh.CashSales = pos.Round2(sh.CashSales)
		sh.CardSales = pos.Round2(sh.CardSales)

		var movements []models.CashMovement
		if err := database.DB.Where("shift_id = ?", sh.ID).Find(&movements).Error; err == nil {
			for _, m := range movements {
				if m.Type == models.CashIn {
					sh.CashIn += m.Amount
				} else {
					sh.CashOut += m.Amount
				}
			}
			sh.CashIn = pos.Round2(sh.CashIn)
			sh.CashOut = pos.Round2(sh.CashOut)
		}

		sh.ClosedAt = &now
		sh.ClosingCounted = &body.Counted
		sh.NoteClose = body.Note

		if err := database.DB.Save(sh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya kapatılamadı")
		}

		expected := pos.Round2(sh.OpeningFloat + sh.CashSales + sh.CashIn - sh.CashOut)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      cashier.ID,
			UserName:    cashier.Name,
			EntityType:  "shift",
			EntityID:    sh.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Vardiya kapandı (beklenen: %.2f, sayılan: %.2f)", expected, body.Counted),
			After:       sh,
		})

		return c.JSON(fiber.Map{
			"shift":        sh,
			"expectedCash": expected,
			"difference":   pos.Round2(body.Counted - expected),
		})
	}
}

// -------------------------------------------------
// GET /api/shifts/current
// -------------------------------------------------
func CurrentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier := auth.CurrentCashier(c)
		if cashier == nil {
			return fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
		}
		sh, err := openShiftFor(cashier.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya durumu sorgulanamadı")
		}
		if sh == nil {
			return fiber.NewError(fiber.StatusNotFound, "Açık vardiya yok")
		}
		return c.JSON(sh)
	}
}

// -------------------------------------------------
// GET /api/shifts — son vardiyalar (admin)
// -------------------------------------------------
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 500 {
			limit = 50
		}
		var shifts []models.Shift
		if err := database.DB.Order("opened_at DESC").Limit(limit).Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiyalar listelenemedi")
		}
		return c.JSON(shifts)
	}
}

// -------------------------------------------------
// POST /api/shifts/cash — vardiya içi nakit giriş/çıkış
// -------------------------------------------------
func CashMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier := auth.CurrentCashier(c)
		if cashier == nil {
			return fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
		}

		var body CashMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Type != models.CashIn && body.Type != models.CashOut {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tip (in|out)")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		sh, err := openShiftFor(cashier.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya durumu sorgulanamadı")
		}
		if sh == nil {
			return fiber.NewError(fiber.StatusConflict, "Nakit hareketi için açık vardiya gerekli")
		}

		m := models.CashMovement{
			ID:      uuid.NewString(),
			ShiftID: sh.ID,
			Type:    body.Type,
			Amount:  body.Amount,
			Reason:  body.Reason,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nakit hareketi kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// -------------------------------------------------
// GET /api/shifts/:id/cash
// -------------------------------------------------
func ListCashMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var movements []models.CashMovement
		if err := database.DB.Where("shift_id = ?", c.Params("id")).
			Order("created_at ASC").Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}
		return c.JSON(movements)
	}
}
