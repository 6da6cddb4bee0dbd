package pos

import "hotelpos-backend/internal/models"

// Mutfak sayaçları tanısaldır, sıkı bir muhasebe defteri değildir: sıra dışı
// olaylar yüzünden birkaç adet kaybetmek eksiye düşmekten veya panikten her
// zaman iyidir. Bu yüzden tüm azaltmalar sıfırda kelepçelenir.

func addCount(m map[string]int, key string, by int) {
	if by <= 0 {
		return
	}
	m[key] += by
}

func subCount(m map[string]int, key string, by int) {
	if by <= 0 {
		return
	}
	n := m[key] - by
	if n <= 0 {
		delete(m, key)
		return
	}
	m[key] = n
}

// transferCount adedi prep'ten served'e (veya undo'da tersine) taşır.
func transferCount(from, to map[string]int, key string, qty int) {
	subCount(from, key, qty)
	addCount(to, key, qty)
}

// mergeCountsAdd iki sayaç haritasını anahtar bazında toplayarak birleştirir
// (masa birleştirme / adisyon taşıma).
func mergeCountsAdd(dst, src map[string]int) {
	for k, v := range src {
		if v > 0 {
			dst[k] += v
		}
	}
}

func cloneCounts(k models.KitchenCounts) models.KitchenCounts {
	out := models.NewKitchenCounts()
	for key, v := range k.Prep {
		out.Prep[key] = v
	}
	for key, v := range k.Served {
		out.Served[key] = v
	}
	return out
}

// NotSent bir şekil için henüz mutfağa gitmemiş adedi türetir:
// max(0, sepet adedi − prep − served).
func NotSent(cartQty int, counts models.KitchenCounts, key string) int {
	n := cartQty - counts.Prep[key] - counts.Served[key]
	if n < 0 {
		return 0
	}
	return n
}

// InKitchen şu an hazırlıkta görünen adedi türetir. done geçişi adedi
// prep'ten çıkarıp served'e taşıdığı için iki kova ayrıktır; hazırlıktaki
// adet doğrudan prep sayacıdır.
func InKitchen(counts models.KitchenCounts, key string) int {
	n := counts.Prep[key]
	if n < 0 {
		return 0
	}
	return n
}
