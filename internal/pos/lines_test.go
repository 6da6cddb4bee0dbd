package pos

import (
	"testing"

	"hotelpos-backend/internal/models"
)

func mods(pairs ...models.Modifier) models.ModifierList {
	return models.ModifierList(pairs)
}

func TestLinesMatchForMerge(t *testing.T) {
	tests := []struct {
		name string
		a    models.OrderLine
		b    models.OrderLine
		want bool
	}{
		{
			name: "sameItemNoMods",
			a:    models.OrderLine{ItemID: "x"},
			b:    models.OrderLine{ItemID: "x"},
			want: true,
		},
		{
			name: "differentItem",
			a:    models.OrderLine{ItemID: "x"},
			b:    models.OrderLine{ItemID: "y"},
			want: false,
		},
		{
			name: "sameModsSameOrder",
			a: models.OrderLine{ItemID: "x", Mods: mods(
				models.Modifier{Name: "Büyük", PriceDelta: 0.5},
				models.Modifier{Name: "Acı", PriceDelta: 0},
			)},
			b: models.OrderLine{ItemID: "x", Mods: mods(
				models.Modifier{Name: "Büyük", PriceDelta: 0.5},
				models.Modifier{Name: "Acı", PriceDelta: 0},
			)},
			want: true,
		},
		{
			// Birleştirme karşılaştırması bilinçli olarak sıraya duyarlı
			name: "sameModsDifferentOrder",
			a: models.OrderLine{ItemID: "x", Mods: mods(
				models.Modifier{Name: "Büyük", PriceDelta: 0.5},
				models.Modifier{Name: "Acı", PriceDelta: 0},
			)},
			b: models.OrderLine{ItemID: "x", Mods: mods(
				models.Modifier{Name: "Acı", PriceDelta: 0},
				models.Modifier{Name: "Büyük", PriceDelta: 0.5},
			)},
			want: false,
		},
		{
			name: "samePairDifferentDelta",
			a:    models.OrderLine{ItemID: "x", Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 0.5})},
			b:    models.OrderLine{ItemID: "x", Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 1.0})},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linesMatchForMerge(tt.a, tt.b); got != tt.want {
				t.Errorf("linesMatchForMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeKeyOrderIndependent(t *testing.T) {
	a := ShapeKey("item1", []models.Modifier{
		{GroupID: "size", OptionID: "lg"},
		{GroupID: "addons", OptionID: "cheese"},
	})
	b := ShapeKey("item1", []models.Modifier{
		{GroupID: "addons", OptionID: "cheese"},
		{GroupID: "size", OptionID: "lg"},
	})
	if a != b {
		t.Errorf("ShapeKey sıra bağımsız olmalı: %q != %q", a, b)
	}
}

func TestShapeKeyDistinguishesShapes(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "differentItem",
			a:    ShapeKey("item1", nil),
			b:    ShapeKey("item2", nil),
		},
		{
			name: "differentOption",
			a:    ShapeKey("item1", []models.Modifier{{GroupID: "size", OptionID: "lg"}}),
			b:    ShapeKey("item1", []models.Modifier{{GroupID: "size", OptionID: "reg"}}),
		},
		{
			name: "withAndWithoutMods",
			a:    ShapeKey("item1", nil),
			b:    ShapeKey("item1", []models.Modifier{{GroupID: "size", OptionID: "lg"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("farklı şekiller aynı anahtarı üretti: %q", tt.a)
			}
		})
	}
}

func TestShapeKeyStable(t *testing.T) {
	m := []models.Modifier{
		{GroupID: "size", OptionID: "lg"},
		{GroupID: "sweet", OptionID: "less"},
	}
	want := ShapeKey("item1", m)
	for i := 0; i < 50; i++ {
		if got := ShapeKey("item1", m); got != want {
			t.Fatalf("ShapeKey deterministik değil: %q != %q", got, want)
		}
	}
}

func TestMergeLines(t *testing.T) {
	base := []models.OrderLine{
		{ID: "l1", ItemID: "x", Qty: 2},
		{ID: "l2", ItemID: "y", Qty: 1, Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 0.5})},
	}

	add := []models.OrderLine{
		{ID: "l3", ItemID: "x", Qty: 3},                                                           // l1 ile birleşir
		{ID: "l4", ItemID: "y", Qty: 1},                                                           // modsuz, yeni satır
		{ID: "l5", ItemID: "y", Qty: 2, Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 0.5})}, // l2 ile birleşir
	}

	out := MergeLines(base, add)

	if len(out) != 3 {
		t.Fatalf("MergeLines satır sayısı = %d, want 3", len(out))
	}
	if out[0].Qty != 5 {
		t.Errorf("birleşen satır adedi = %d, want 5", out[0].Qty)
	}
	if out[1].Qty != 3 {
		t.Errorf("modlu satır adedi = %d, want 3", out[1].Qty)
	}
	if out[2].ItemID != "y" || len(out[2].Mods) != 0 {
		t.Errorf("yeni satır beklenen şekilde eklenmedi: %+v", out[2])
	}

	// Girdi değişmemeli
	if base[0].Qty != 2 {
		t.Errorf("MergeLines girdiyi değiştirdi: base[0].Qty = %d", base[0].Qty)
	}
}

func TestDeltaLines(t *testing.T) {
	existing := []models.OrderLine{{ID: "l1", ItemID: "x", Qty: 3}}

	tests := []struct {
		name     string
		cart     []models.OrderLine
		wantLen  int
		wantQty  int
	}{
		{
			name:    "positiveDiff",
			cart:    []models.OrderLine{{ID: "l1", ItemID: "x", Qty: 5}},
			wantLen: 1,
			wantQty: 2,
		},
		{
			name:    "equalQty",
			cart:    []models.OrderLine{{ID: "l1", ItemID: "x", Qty: 3}},
			wantLen: 0,
		},
		{
			name:    "lowerQty",
			cart:    []models.OrderLine{{ID: "l1", ItemID: "x", Qty: 2}},
			wantLen: 0,
		},
		{
			name:    "entirelyNewLine",
			cart:    []models.OrderLine{{ID: "l2", ItemID: "z", Qty: 4}},
			wantLen: 1,
			wantQty: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DeltaLines(existing, tt.cart)
			if len(out) != tt.wantLen {
				t.Fatalf("DeltaLines satır sayısı = %d, want %d", len(out), tt.wantLen)
			}
			if tt.wantLen > 0 && out[0].Qty != tt.wantQty {
				t.Errorf("DeltaLines adedi = %d, want %d", out[0].Qty, tt.wantQty)
			}
		})
	}
}

func TestDeltaLinesModsMustMatchStrictly(t *testing.T) {
	existing := []models.OrderLine{
		{ID: "l1", ItemID: "x", Qty: 3, Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 0.5})},
	}
	cart := []models.OrderLine{
		{ID: "l2", ItemID: "x", Qty: 2}, // modsuz, farklı şekil
	}
	out := DeltaLines(existing, cart)
	if len(out) != 1 || out[0].Qty != 2 {
		t.Errorf("farklı şekil tamamen yeni sayılmalı, got %+v", out)
	}
}
