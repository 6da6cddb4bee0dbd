package backup

import (
	"encoding/json"
	"testing"
	"time"

	"hotelpos-backend/internal/models"
)

func TestEnvelopeShape(t *testing.T) {
	env := Envelope{
		Meta:    NewMeta(),
		Catalog: []models.CatalogItem{{ID: "1", Name: "Masala Çayı", Price: 3.0, TaxRate: 0.07}},
		Shifts:  []models.Shift{{ID: "s1", UserID: "u1", UserName: "Priya", OpenedAt: time.Now()}},
		Cash:    []models.CashMovement{{ID: "m1", ShiftID: "s1", Type: models.CashIn, Amount: 20}},
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("zarf kodlanamadı: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("zarf çözülemedi: %v", err)
	}
	for _, key := range []string{"meta", "catalog", "tables", "tickets", "kitchen", "orders", "shifts", "cash"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("zarfta %q alanı yok", key)
		}
	}

	var meta Meta
	if err := json.Unmarshal(raw["meta"], &meta); err != nil {
		t.Fatalf("meta çözülemedi: %v", err)
	}
	if meta.App != "hotelpos" {
		t.Errorf("meta.app = %q, want %q", meta.App, "hotelpos")
	}
	if meta.SchemaVersion != schemaVersion {
		t.Errorf("meta.schemaVersion = %d, want %d", meta.SchemaVersion, schemaVersion)
	}
	if meta.ExportedAt.IsZero() {
		t.Error("meta.exportedAt boş")
	}
}

func TestRangeMetaCarriesBounds(t *testing.T) {
	data, err := json.Marshal(NewRangeMeta(100, 200))
	if err != nil {
		t.Fatalf("meta kodlanamadı: %v", err)
	}

	var got struct {
		App   string `json:"app"`
		Range struct {
			Start int64 `json:"start"`
			End   int64 `json:"end"`
		} `json:"range"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("meta çözülemedi: %v", err)
	}
	if got.App != "hotelpos" {
		t.Errorf("app = %q, want %q", got.App, "hotelpos")
	}
	if got.Range.Start != 100 || got.Range.End != 200 {
		t.Errorf("range = [%d, %d], want [100, 200]", got.Range.Start, got.Range.End)
	}
}
