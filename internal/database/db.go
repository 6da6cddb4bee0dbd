package database

import (
	"log"

	"hotelpos-backend/internal/config"
	"hotelpos-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.DiningTable{},
		&models.Ticket{},
		&models.KitchenTicket{},
		&models.Order{},
		&models.Shift{},
		&models.CashMovement{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	seedUsers()

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// seedUsers kullanıcı tablosu boşsa varsayılan PIN'lerle üç rolü açar.
// PIN'ler ilk girişten sonra admin panelinden değiştirilmelidir.
func seedUsers() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []struct {
		name string
		role models.UserRole
		pin  string
	}{
		{name: "Yönetici", role: models.RoleAdmin, pin: "1234"},
		{name: "Kasiyer", role: models.RoleCashier, pin: "1111"},
		{name: "Mutfak", role: models.RoleKitchen, pin: "2222"},
	}

	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.pin), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("PIN hash hatası (%s): %v", d.name, err)
			continue
		}
		u := models.User{
			ID:      uuid.NewString(),
			Name:    d.name,
			Role:    d.role,
			PinHash: string(hash),
		}
		if err := DB.Create(&u).Error; err != nil {
			log.Printf("Varsayılan kullanıcı oluşturulamadı (%s): %v", d.name, err)
		}
	}
	log.Println("Varsayılan kullanıcılar oluşturuldu (admin/kasiyer/mutfak).")
}
