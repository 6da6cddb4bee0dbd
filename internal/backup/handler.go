package backup

import (
	"fmt"
	"time"

	"hotelpos-backend/internal/audit"
	"hotelpos-backend/internal/auth"
	"hotelpos-backend/internal/database"
	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"
	"hotelpos-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const schemaVersion = 1

// Meta her dışa aktarma zarfının başında yer alır; içe aktarmada sürüm
// kontrolü buradan yapılır.
type Meta struct {
	App           string    `json:"app"`
	SchemaVersion int       `json:"schemaVersion"`
	ExportedAt    time.Time `json:"exportedAt"`
}

func NewMeta() Meta {
	return Meta{App: "hotelpos", SchemaVersion: schemaVersion, ExportedAt: time.Now()}
}

// RangeMeta tarih aralıklı sipariş dışa aktarmasının meta bloğudur; aralık
// sınırları milisaniye cinsindendir.
type RangeMeta struct {
	Meta
	Range MsRange `json:"range"`
}

type MsRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func NewRangeMeta(startMs, endMs int64) RangeMeta {
	return RangeMeta{Meta: NewMeta(), Range: MsRange{Start: startMs, End: endMs}}
}

// Envelope tam durum yedeğinin taşıma formatıdır. Kullanıcı hesapları (PIN
// hash'leri) yedek kapsamı dışındadır; cihazdan asla dışarı çıkmazlar.
type Envelope struct {
	Meta    Meta                   `json:"meta"`
	Catalog []models.CatalogItem   `json:"catalog"`
	Tables  []models.DiningTable   `json:"tables"`
	Tickets []models.Ticket        `json:"tickets"`
	Kitchen []models.KitchenTicket `json:"kitchen"`
	Orders  []models.Order         `json:"orders"`
	Shifts  []models.Shift         `json:"shifts"`
	Cash    []models.CashMovement  `json:"cash"`
}

// -------------------------------------------------
// GET /api/backup/export
// -------------------------------------------------
func ExportHandler(store *pos.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := store.Snapshot()

		var shifts []models.Shift
		if err := database.DB.Order("opened_at ASC").Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiyalar okunamadı")
		}
		var cash []models.CashMovement
		if err := database.DB.Order("created_at ASC").Find(&cash).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nakit hareketleri okunamadı")
		}

		env := Envelope{
			Meta:    NewMeta(),
			Catalog: st.Catalog,
			Tables:  st.Tables,
			Tickets: st.Tickets,
			Kitchen: st.KitchenQueue,
			Orders:  st.Orders,
			Shifts:  shifts,
			Cash:    cash,
		}

		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="hotelpos-backup-%s.json"`, time.Now().Format("2006-01-02")))
		return c.JSON(env)
	}
}

// -------------------------------------------------
// POST /api/backup/import — tek transaction, ya hep ya hiç
// -------------------------------------------------
func ImportHandler(store *pos.Store, persist *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var env Envelope
		if err := c.BodyParser(&env); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yedek dosyası")
		}
		if env.Meta.SchemaVersion != schemaVersion {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Desteklenmeyen yedek sürümü: %d", env.Meta.SchemaVersion))
		}

		ds := &pos.Dataset{
			Catalog: env.Catalog,
			Tables:  env.Tables,
			Tickets: env.Tickets,
			Kitchen: env.Kitchen,
			Orders:  env.Orders,
		}

		// Önce durable store: transaction başarısızsa bellek içi durum
		// hiç değişmez
		if persist != nil {
			if err := persist.Restore(ds, env.Shifts, env.Cash); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Yedek geri yüklenemedi")
			}
		}
		store.ReplaceDataset(ds)

		if cashier := auth.CurrentCashier(c); cashier != nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      cashier.ID,
				UserName:    cashier.Name,
				EntityType:  "backup",
				EntityID:    env.Meta.ExportedAt.Format(time.RFC3339),
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Yedek geri yüklendi (%d ürün, %d sipariş)", len(env.Catalog), len(env.Orders)),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Yedek geri yüklendi",
			"catalog": len(env.Catalog),
			"tables":  len(env.Tables),
			"tickets": len(env.Tickets),
			"kitchen": len(env.Kitchen),
			"orders":  len(env.Orders),
			"shifts":  len(env.Shifts),
			"cash":    len(env.Cash),
		})
	}
}
