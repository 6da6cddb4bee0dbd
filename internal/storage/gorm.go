package storage

import (
	"context"

	"hotelpos-backend/internal/models"
	"hotelpos-backend/internal/pos"

	"gorm.io/gorm"
)

// Store pos.Persister sözleşmesinin Postgres (gorm) gerçeklemesidir.
// Bellek içi durum otorite olduğu için buradaki yazmalar fire-and-forget
// kuyruğundan gelir; okuma yalnızca açılışta (LoadAll) ve raporlarda olur.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LoadAll(ctx context.Context) (*pos.Dataset, error) {
	ds := &pos.Dataset{}
	db := s.db.WithContext(ctx)

	if err := db.Find(&ds.Catalog).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&ds.Tables).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&ds.Tickets).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&ds.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&ds.Kitchen).Error; err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *Store) PutCatalogItem(item models.CatalogItem) error {
	return s.db.Save(&item).Error
}

func (s *Store) DeleteCatalogItem(id string) error {
	return s.db.Delete(&models.CatalogItem{}, "id = ?", id).Error
}

func (s *Store) PutTable(t models.DiningTable) error {
	return s.db.Save(&t).Error
}

func (s *Store) DeleteTable(id string) error {
	return s.db.Delete(&models.DiningTable{}, "id = ?", id).Error
}

func (s *Store) PutTicket(t models.Ticket) error {
	return s.db.Save(&t).Error
}

func (s *Store) DeleteTicket(id string) error {
	return s.db.Delete(&models.Ticket{}, "id = ?", id).Error
}

func (s *Store) PutKitchenTicket(t models.KitchenTicket) error {
	return s.db.Save(&t).Error
}

func (s *Store) DeleteKitchenTicket(id string) error {
	return s.db.Delete(&models.KitchenTicket{}, "id = ?", id).Error
}

func (s *Store) PutOrder(o models.Order) error {
	return s.db.Save(&o).Error
}

func (s *Store) ReplaceCatalog(rows []models.CatalogItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CatalogItem{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (s *Store) ReplaceTables(rows []models.DiningTable) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DiningTable{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (s *Store) ReplaceKitchen(rows []models.KitchenTicket) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.KitchenTicket{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

// Restore yedekten gelen veri kümesini tek transaction içinde yazar: ya tüm
// koleksiyonlar değişir ya da hiçbiri. Vardiyalar ve nakit hareketleri de
// zarfın parçasıdır; yalnızca kullanıcı hesapları kapsam dışıdır.
func (s *Store) Restore(ds *pos.Dataset, shifts []models.Shift, cash []models.CashMovement) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		steps := []func() error{
			func() error { return tx.Where("1 = 1").Delete(&models.CatalogItem{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.DiningTable{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.Ticket{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.KitchenTicket{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.Order{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.CashMovement{}).Error },
			func() error { return tx.Where("1 = 1").Delete(&models.Shift{}).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		if len(ds.Catalog) > 0 {
			if err := tx.CreateInBatches(ds.Catalog, 100).Error; err != nil {
				return err
			}
		}
		if len(ds.Tables) > 0 {
			if err := tx.CreateInBatches(ds.Tables, 100).Error; err != nil {
				return err
			}
		}
		if len(ds.Tickets) > 0 {
			if err := tx.CreateInBatches(ds.Tickets, 100).Error; err != nil {
				return err
			}
		}
		if len(ds.Kitchen) > 0 {
			if err := tx.CreateInBatches(ds.Kitchen, 100).Error; err != nil {
				return err
			}
		}
		if len(ds.Orders) > 0 {
			if err := tx.CreateInBatches(ds.Orders, 100).Error; err != nil {
				return err
			}
		}
		if len(shifts) > 0 {
			if err := tx.CreateInBatches(shifts, 100).Error; err != nil {
				return err
			}
		}
		if len(cash) > 0 {
			if err := tx.CreateInBatches(cash, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
