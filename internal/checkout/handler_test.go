package checkout

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"
)

func newTestStore(t *testing.T) *pos.Store {
	t.Helper()
	s := pos.NewStore(nil, nil)
	s.Hydrate(context.Background())
	t.Cleanup(s.Close)
	return s
}

func TestListOrdersRangeEnvelope(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddItem("3", 2, nil); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := s.Checkout(pos.CheckoutInput{Method: models.PaymentCard}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	app := fiber.New()
	app.Get("/orders", ListOrdersHandler(s))

	resp, err := app.Test(httptest.NewRequest("GET", "/orders", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var body struct {
		Meta struct {
			App           string `json:"app"`
			SchemaVersion int    `json:"schemaVersion"`
			Range         struct {
				Start int64 `json:"start"`
				End   int64 `json:"end"`
			} `json:"range"`
		} `json:"meta"`
		Orders []models.Order `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("yanıt çözülemedi: %v", err)
	}

	if body.Meta.App != "hotelpos" {
		t.Errorf("meta.app = %q, want %q", body.Meta.App, "hotelpos")
	}
	if body.Meta.Range.End == 0 {
		t.Error("meta.range.end boş")
	}
	if got, want := len(body.Orders), 1; got != want {
		t.Fatalf("%d sipariş döndü, want %d", got, want)
	}
	if got, want := body.Orders[0].Total, 5.0; got != want {
		t.Errorf("Total = %v, want %v", got, want)
	}
}

func TestListOrdersInvalidRange(t *testing.T) {
	s := newTestStore(t)

	app := fiber.New()
	app.Get("/orders", ListOrdersHandler(s))

	resp, err := app.Test(httptest.NewRequest("GET", "/orders?start=5&end=1", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
