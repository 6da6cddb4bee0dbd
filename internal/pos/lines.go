package pos

import (
	"fmt"
	"sort"
	"strings"

	"hotelpos-backend/internal/models"
)

// Sepet birleştirme için katı karşılaştırma: aynı ürün ve modifier listesi
// birebir aynı sırada, isim + fiyat farkı eşleşiyor. Bilinçli olarak sıraya
// duyarlıdır; sıra bağımsız olan tek şey mutfak sayaç anahtarıdır (ShapeKey).
// İkisini tek bir eşitlik fonksiyonunda birleştirme.
func linesMatchForMerge(a, b models.OrderLine) bool {
	if a.ItemID != b.ItemID || len(a.Mods) != len(b.Mods) {
		return false
	}
	for i, m := range a.Mods {
		if m.Name != b.Mods[i].Name || m.PriceDelta != b.Mods[i].PriceDelta {
			return false
		}
	}
	return true
}

// ShapeKey bir satırın "şeklini" (ürün + seçili modifier kümesi) deterministik
// bir string'e indirger. Modifier'lar grupId:optionId olarak sıralanır; aynı
// şekil her zaman aynı anahtarı üretir, süreç yeniden başlasa da değişmez.
func ShapeKey(itemID string, mods []models.Modifier) string {
	parts := make([]string, 0, len(mods))
	for _, m := range mods {
		parts = append(parts, fmt.Sprintf("%s:%s", m.GroupID, m.OptionID))
	}
	sort.Strings(parts)
	return itemID + "::" + strings.Join(parts, "|")
}

// ModsLabel mutfak fişinde gösterilecek modifier metnini üretir.
func ModsLabel(mods []models.Modifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, 0, len(mods))
	for _, m := range mods {
		if m.PriceDelta != 0 {
			parts = append(parts, fmt.Sprintf("%s (+%g)", m.Name, m.PriceDelta))
		} else {
			parts = append(parts, m.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// MergeLines eklenen satırları taban listeye katar: aynı şekilde satır varsa
// adedini artırır, yoksa sona ekler. Girdileri değiştirmez, yeni liste döner.
func MergeLines(base, additions []models.OrderLine) []models.OrderLine {
	out := make([]models.OrderLine, len(base))
	copy(out, base)
	for _, add := range additions {
		merged := false
		for i := range out {
			if linesMatchForMerge(out[i], add) {
				out[i].Qty += add.Qty
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, add)
		}
	}
	return out
}

// DeltaLines mevcut adisyona göre sepetteki YENİ adetleri çıkarır: adisyonda
// olmayan satır tamamen yeni sayılır; varsa sadece pozitif adet farkı döner.
// Aynı sepet tekrar gönderildiğinde mutfağa mükerrer sipariş gitmesini bu
// fonksiyon engeller.
func DeltaLines(existing, cart []models.OrderLine) []models.OrderLine {
	out := []models.OrderLine{}
	for _, cl := range cart {
		var match *models.OrderLine
		for i := range existing {
			if linesMatchForMerge(existing[i], cl) {
				match = &existing[i]
				break
			}
		}
		if match == nil {
			out = append(out, cl)
			continue
		}
		if diff := cl.Qty - match.Qty; diff > 0 {
			nl := cl
			nl.Qty = diff
			out = append(out, nl)
		}
	}
	return out
}
