package pos

import "errors"

// Ön koşul ve doğrulama hataları senkron döner ve hiçbir durumu değiştirmez.
// Arka plan kalıcılık hataları asla bu kanaldan yüzeye çıkmaz.
var (
	ErrEmptyCart        = errors.New("sepet boş")
	ErrItemNotFound     = errors.New("ürün katalogda yok")
	ErrLineNotFound     = errors.New("sepet satırı bulunamadı")
	ErrTableNotFound    = errors.New("masa bulunamadı")
	ErrTableOccupied    = errors.New("masada açık adisyon var")
	ErrTicketNotFound   = errors.New("adisyon bulunamadı")
	ErrKitchenNotFound  = errors.New("mutfak fişi bulunamadı")
	ErrSameTable        = errors.New("kaynak ve hedef masa aynı")
	ErrTenderedRequired = errors.New("nakit ödemede alınan tutar zorunlu")
	ErrInsufficientCash = errors.New("alınan tutar toplamın altında")
	ErrInvalidRange     = errors.New("tarih aralığı geçersiz")
)
