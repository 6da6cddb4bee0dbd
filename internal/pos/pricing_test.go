package pos

import (
	"testing"

	"hotelpos-backend/internal/models"
)

func testResolver(items ...models.CatalogItem) ItemResolver {
	return func(id string) (models.CatalogItem, bool) {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
		return models.CatalogItem{}, false
	}
}

func defaultPolicy() PricingPolicy {
	return PricingPolicy{DefaultTaxRate: 0.07, ServiceChargeTaxable: true, TipTaxable: false}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "halfUp", in: 0.125, want: 0.13},
		{name: "halfDownNegative", in: -0.125, want: -0.13},
		{name: "plainDown", in: 1.114, want: 1.11},
		{name: "plainUp", in: 1.116, want: 1.12},
		{name: "alreadyRounded", in: 5.50, want: 5.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineGross(t *testing.T) {
	item := models.CatalogItem{ID: "x", Price: 3.0}
	line := models.OrderLine{ItemID: "x", Qty: 2, Mods: mods(models.Modifier{Name: "Büyük", PriceDelta: 0.5})}
	if got := LineGross(line, item); got != 7.00 {
		t.Errorf("LineGross = %v, want 7.00", got)
	}
}

func TestComputeBreakdownItemsOnly(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{{ID: "l1", ItemID: "p", Qty: 2}}

	br := ComputeBreakdown(cart, resolve, Adjustments{}, defaultPolicy())

	if br.ItemsGross != 17.00 {
		t.Errorf("ItemsGross = %v, want 17.00", br.ItemsGross)
	}
	if br.ItemsNet != 15.89 {
		t.Errorf("ItemsNet = %v, want 15.89", br.ItemsNet)
	}
	if br.ItemsTax != 1.11 {
		t.Errorf("ItemsTax = %v, want 1.11", br.ItemsTax)
	}
	if br.SubtotalGross != 17.00 || br.TotalGross != 17.00 {
		t.Errorf("Subtotal/Total = %v/%v, want 17.00/17.00", br.SubtotalGross, br.TotalGross)
	}
	if br.Tax != 1.11 {
		t.Errorf("Tax = %v, want 1.11", br.Tax)
	}
}

func TestComputeBreakdownPercentDiscount(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{{ID: "l1", ItemID: "p", Qty: 2}}

	br := ComputeBreakdown(cart, resolve, Adjustments{
		Discount: Adjustment{Type: AdjustmentPercent, Value: 10},
	}, defaultPolicy())

	if br.DiscountGross != 1.70 {
		t.Errorf("DiscountGross = %v, want 1.70", br.DiscountGross)
	}
	if br.DiscountTax != 0.11 {
		t.Errorf("DiscountTax = %v, want 0.11", br.DiscountTax)
	}
	if br.DiscountNet != 1.59 {
		t.Errorf("DiscountNet = %v, want 1.59", br.DiscountNet)
	}
	if br.SubtotalGross != 15.30 {
		t.Errorf("SubtotalGross = %v, want 15.30", br.SubtotalGross)
	}
	if br.Tax != 1.00 {
		t.Errorf("Tax = %v, want 1.00", br.Tax)
	}
	if br.TotalGross != 15.30 {
		t.Errorf("TotalGross = %v, want 15.30", br.TotalGross)
	}
}

// Tam akış: indirim + servis ücreti + yüzde bahşiş.
func TestComputeBreakdownFullPipeline(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{{ID: "l1", ItemID: "p", Qty: 2}}

	br := ComputeBreakdown(cart, resolve, Adjustments{
		Discount:         Adjustment{Type: AdjustmentPercent, Value: 10},
		ServiceChargePct: 10,
		Tip:              Adjustment{Type: AdjustmentPercent, Value: 10},
	}, defaultPolicy())

	if br.ServiceChargeGross != 1.53 {
		t.Errorf("ServiceChargeGross = %v, want 1.53", br.ServiceChargeGross)
	}
	if br.ServiceChargeNet != 1.43 || br.ServiceChargeTax != 0.10 {
		t.Errorf("ServiceCharge net/tax = %v/%v, want 1.43/0.10", br.ServiceChargeNet, br.ServiceChargeTax)
	}
	// Bahşiş tabanı = 15.30 + 1.53 = 16.83
	if br.TipGross != 1.68 {
		t.Errorf("TipGross = %v, want 1.68", br.TipGross)
	}
	if br.TipTax != 0 {
		t.Errorf("TipTax = %v, want 0 (bahşiş vergilendirilmez)", br.TipTax)
	}
	if br.SubtotalGross != 16.83 {
		t.Errorf("SubtotalGross = %v, want 16.83 (bahşiş hariç)", br.SubtotalGross)
	}
	if br.Tax != 1.10 {
		t.Errorf("Tax = %v, want 1.10", br.Tax)
	}
	if br.TotalGross != 18.51 {
		t.Errorf("TotalGross = %v, want 18.51 (bahşiş dahil)", br.TotalGross)
	}
}

func TestComputeBreakdownClamps(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{{ID: "l1", ItemID: "p", Qty: 2}}

	t.Run("percentDiscountOver100", func(t *testing.T) {
		br := ComputeBreakdown(cart, resolve, Adjustments{
			Discount: Adjustment{Type: AdjustmentPercent, Value: 150},
		}, defaultPolicy())
		if br.DiscountGross != 17.00 {
			t.Errorf("DiscountGross = %v, want 17.00 (yüzde 100'e sıkıştırılmalı)", br.DiscountGross)
		}
		if br.TotalGross != 0 {
			t.Errorf("TotalGross = %v, want 0", br.TotalGross)
		}
	})

	t.Run("amountDiscountOverGross", func(t *testing.T) {
		br := ComputeBreakdown(cart, resolve, Adjustments{
			Discount: Adjustment{Type: AdjustmentAmount, Value: 99},
		}, defaultPolicy())
		if br.DiscountGross != 17.00 {
			t.Errorf("DiscountGross = %v, want 17.00 (brüte sıkıştırılmalı)", br.DiscountGross)
		}
	})

	t.Run("negativeAmountDiscount", func(t *testing.T) {
		br := ComputeBreakdown(cart, resolve, Adjustments{
			Discount: Adjustment{Type: AdjustmentAmount, Value: -5},
		}, defaultPolicy())
		if br.DiscountGross != 0 {
			t.Errorf("DiscountGross = %v, want 0", br.DiscountGross)
		}
	})

	t.Run("negativeServiceCharge", func(t *testing.T) {
		br := ComputeBreakdown(cart, resolve, Adjustments{ServiceChargePct: -10}, defaultPolicy())
		if br.ServiceChargeGross != 0 {
			t.Errorf("ServiceChargeGross = %v, want 0", br.ServiceChargeGross)
		}
	})

	t.Run("negativeTipAmount", func(t *testing.T) {
		br := ComputeBreakdown(cart, resolve, Adjustments{
			Tip: Adjustment{Type: AdjustmentAmount, Value: -3},
		}, defaultPolicy())
		if br.TipGross != 0 {
			t.Errorf("TipGross = %v, want 0", br.TipGross)
		}
	})
}

func TestComputeBreakdownMissingItemExcluded(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{
		{ID: "l1", ItemID: "p", Qty: 1},
		{ID: "l2", ItemID: "silinmis", Qty: 3},
	}
	br := ComputeBreakdown(cart, resolve, Adjustments{}, defaultPolicy())
	if br.ItemsGross != 8.50 {
		t.Errorf("ItemsGross = %v, want 8.50 (çözümlenemeyen satır hariç)", br.ItemsGross)
	}
}

func TestComputeBreakdownEmptyCart(t *testing.T) {
	br := ComputeBreakdown(nil, testResolver(), Adjustments{
		Discount: Adjustment{Type: AdjustmentPercent, Value: 50},
	}, defaultPolicy())
	if br.ItemsGross != 0 || br.DiscountGross != 0 || br.TotalGross != 0 {
		t.Errorf("boş sepet sıfır döküm üretmeli, got %+v", br)
	}
}

// Aynı girdi her zaman aynı dökümü üretmeli (checkout / rapor mutabakatı).
func TestComputeBreakdownDeterministic(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "p", Price: 8.5, TaxRate: 0.07})
	cart := []models.OrderLine{{ID: "l1", ItemID: "p", Qty: 2}}
	adj := Adjustments{
		Discount:         Adjustment{Type: AdjustmentPercent, Value: 7.5},
		ServiceChargePct: 12.5,
		Tip:              Adjustment{Type: AdjustmentAmount, Value: 2.0},
	}
	want := ComputeBreakdown(cart, resolve, adj, defaultPolicy())
	for i := 0; i < 20; i++ {
		if got := ComputeBreakdown(cart, resolve, adj, defaultPolicy()); got != want {
			t.Fatalf("döküm deterministik değil: %+v != %+v", got, want)
		}
	}
}

func TestComputeBreakdownZeroTaxRate(t *testing.T) {
	resolve := testResolver(models.CatalogItem{ID: "z", Price: 10.0, TaxRate: 0})
	cart := []models.OrderLine{{ID: "l1", ItemID: "z", Qty: 1}}
	br := ComputeBreakdown(cart, resolve, Adjustments{}, defaultPolicy())
	if br.ItemsNet != 10.00 || br.ItemsTax != 0 {
		t.Errorf("sıfır oranlı ürün: net/tax = %v/%v, want 10.00/0", br.ItemsNet, br.ItemsTax)
	}
}
