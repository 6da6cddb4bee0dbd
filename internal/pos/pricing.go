package pos

import (
	"github.com/shopspring/decimal"

	"hotelpos-backend/internal/models"
)

type AdjustmentType string

const (
	AdjustmentNone    AdjustmentType = "none"
	AdjustmentPercent AdjustmentType = "percent"
	AdjustmentAmount  AdjustmentType = "amount"
)

type Adjustment struct {
	Type  AdjustmentType `json:"type"`
	Value float64        `json:"value"`
}

type Adjustments struct {
	Discount         Adjustment
	ServiceChargePct float64
	Tip              Adjustment
}

type PricingPolicy struct {
	DefaultTaxRate       float64
	ServiceChargeTaxable bool // varsayılan: true
	TipTaxable           bool // varsayılan: false
}

// Sepetin tam fiyat/vergi dökümü. Tüm tutarlar her aşamadan sonra 2 haneye
// yuvarlanmıştır (yarımlar sıfırdan uzağa).
type Breakdown struct {
	ItemsGross float64 `json:"itemsGross"`
	ItemsNet   float64 `json:"itemsNet"`
	ItemsTax   float64 `json:"itemsTax"`

	DiscountGross float64 `json:"discountGross"`
	DiscountNet   float64 `json:"discountNet"`
	DiscountTax   float64 `json:"discountTax"`

	ServiceChargePct   float64 `json:"serviceChargePct"`
	ServiceChargeGross float64 `json:"serviceChargeGross"`
	ServiceChargeNet   float64 `json:"serviceChargeNet"`
	ServiceChargeTax   float64 `json:"serviceChargeTax"`

	TipType  AdjustmentType `json:"tipType"`
	TipValue float64        `json:"tipValue"`
	TipGross float64        `json:"tipGross"`
	TipNet   float64        `json:"tipNet"`
	TipTax   float64        `json:"tipTax"`

	SubtotalGross float64 `json:"subtotalGross"` // bahşiş hariç
	Tax           float64 `json:"tax"`
	TotalGross    float64 `json:"totalGross"` // bahşiş dahil
}

// ItemResolver satırdaki ürünü çözer; katalogdan silinmiş ürünler için false
// döner ve satır tutara katılmaz.
type ItemResolver func(itemID string) (models.CatalogItem, bool)

func round2(d decimal.Decimal) decimal.Decimal {
	// decimal.Round yarımları sıfırdan uzağa yuvarlar; tüm para
	// yuvarlamaları bu tek semantiğe bağlı.
	return d.Round(2)
}

func clampPct(v float64) decimal.Decimal {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	return decimal.NewFromFloat(v)
}

// LineGross satır brütünü hesaplar: (ürün fiyatı + modifier farkları) × adet,
// 2 haneye yuvarlanmış.
func LineGross(line models.OrderLine, item models.CatalogItem) float64 {
	sum := decimal.NewFromFloat(item.Price)
	for _, m := range line.Mods {
		sum = sum.Add(decimal.NewFromFloat(m.PriceDelta))
	}
	g := sum.Mul(decimal.NewFromInt(int64(line.Qty)))
	return round2(g).InexactFloat64()
}

// ComputeBreakdown sepeti ve sipariş seviyesi ayarlamaları tam bir fiyat
// dökümüne çevirir. Saf fonksiyondur; aynı girdiyle her zaman aynı sonucu
// üretir (checkout ve rapor mutabakatı buna güvenir).
func ComputeBreakdown(cart []models.OrderLine, resolve ItemResolver, adj Adjustments, pol PricingPolicy) Breakdown {
	zero := decimal.Zero
	itemsGross, itemsNet, itemsTax := zero, zero, zero

	// 1) Satır bazında brüt/net/vergi. Fiyatlar vergi dahil kabul edilir:
	// net = brüt / (1 + oran).
	for _, l := range cart {
		item, ok := resolve(l.ItemID)
		if !ok {
			continue
		}
		g := decimal.NewFromFloat(LineGross(l, item))
		n := g
		if item.TaxRate > 0 {
			n = g.Div(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(item.TaxRate)))
		}
		itemsGross = itemsGross.Add(g)
		itemsNet = itemsNet.Add(n)
		itemsTax = itemsTax.Add(g.Sub(n))
	}
	itemsGross = round2(itemsGross)
	itemsNet = round2(itemsNet)
	itemsTax = round2(itemsTax)

	// 2) İndirim: yüzde [0,100] aralığına, tutar [0, itemsGross] aralığına
	// sıkıştırılır. Vergi payı brüt oranıyla dağıtılır.
	discountGross := zero
	switch adj.Discount.Type {
	case AdjustmentPercent:
		discountGross = itemsGross.Mul(clampPct(adj.Discount.Value)).Div(decimal.NewFromInt(100))
	case AdjustmentAmount:
		v := decimal.NewFromFloat(adj.Discount.Value)
		if v.IsNegative() {
			v = zero
		}
		if v.GreaterThan(itemsGross) {
			v = itemsGross
		}
		discountGross = v
	}
	discountGross = round2(discountGross)
	discountTax := zero
	if itemsGross.IsPositive() {
		discountTax = round2(itemsTax.Mul(discountGross).Div(itemsGross))
	}
	discountNet := round2(discountGross.Sub(discountTax))

	// 3) İndirim sonrası
	afterDiscGross := round2(itemsGross.Sub(discountGross))
	afterDiscTax := round2(itemsTax.Sub(discountTax))

	// 4) Servis ücreti: sadece alttan sıfıra sıkıştırılır, üst sınır yok.
	scPct := adj.ServiceChargePct
	if scPct < 0 {
		scPct = 0
	}
	scGross := round2(afterDiscGross.Mul(decimal.NewFromFloat(scPct)).Div(decimal.NewFromInt(100)))
	scNet, scTax := scGross, zero
	if pol.ServiceChargeTaxable && scGross.IsPositive() {
		scNet = round2(scGross.Div(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(pol.DefaultTaxRate))))
		scTax = round2(scGross.Sub(scNet))
	}

	// 5) Bahşiş tabanı = indirim sonrası brüt + servis ücreti brütü
	tipBase := round2(afterDiscGross.Add(scGross))
	tipGross := zero
	switch adj.Tip.Type {
	case AdjustmentPercent:
		tipGross = round2(tipBase.Mul(clampPct(adj.Tip.Value)).Div(decimal.NewFromInt(100)))
	case AdjustmentAmount:
		v := decimal.NewFromFloat(adj.Tip.Value)
		if v.IsNegative() {
			v = zero
		}
		tipGross = round2(v)
	}
	tipNet, tipTax := tipGross, zero
	if pol.TipTaxable && tipGross.IsPositive() {
		tipNet = round2(tipGross.Div(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(pol.DefaultTaxRate))))
		tipTax = round2(tipGross.Sub(tipNet))
	}

	// 6-8) Ara toplam bahşişi içermez; genel toplam içerir.
	subtotalGross := round2(afterDiscGross.Add(scGross))
	taxTotal := round2(afterDiscTax.Add(scTax).Add(tipTax))
	totalGross := round2(subtotalGross.Add(tipGross))

	return Breakdown{
		ItemsGross: itemsGross.InexactFloat64(),
		ItemsNet:   itemsNet.InexactFloat64(),
		ItemsTax:   itemsTax.InexactFloat64(),

		DiscountGross: discountGross.InexactFloat64(),
		DiscountNet:   discountNet.InexactFloat64(),
		DiscountTax:   discountTax.InexactFloat64(),

		ServiceChargePct:   scPct,
		ServiceChargeGross: scGross.InexactFloat64(),
		ServiceChargeNet:   scNet.InexactFloat64(),
		ServiceChargeTax:   scTax.InexactFloat64(),

		TipType:  adj.Tip.Type,
		TipValue: adj.Tip.Value,
		TipGross: tipGross.InexactFloat64(),
		TipNet:   tipNet.InexactFloat64(),
		TipTax:   tipTax.InexactFloat64(),

		SubtotalGross: subtotalGross.InexactFloat64(),
		Tax:           taxTotal.InexactFloat64(),
		TotalGross:    totalGross.InexactFloat64(),
	}
}

// Round2 para tutarını 2 haneye yuvarlar (yarımlar sıfırdan uzağa).
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v)).InexactFloat64()
}
