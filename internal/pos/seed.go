package pos

import "hotelpos-backend/internal/models"

// Durable store boşsa veya hidrasyon başarısız olursa sistem bu yerleşik
// veriyle ayağa kalkar.

func seedCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ID: "1", Name: "Masala Çayı", Category: "İçecek", Price: 3.0, TaxRate: 0.07,
			OptionGroups: models.OptionGroupList{
				{
					ID: "size", Label: "Boy", Type: models.OptionGroupSingle, Required: true, Min: 1, Max: 1,
					Options: []models.Option{
						{ID: "reg", Name: "Normal", PriceDelta: 0},
						{ID: "lg", Name: "Büyük", PriceDelta: 0.5},
					},
				},
				{
					ID: "sweet", Label: "Şeker", Type: models.OptionGroupSingle, Min: 0, Max: 1,
					Options: []models.Option{
						{ID: "less", Name: "Az Şekerli", PriceDelta: 0},
						{ID: "normal", Name: "Normal", PriceDelta: 0},
					},
				},
			},
		},
		{
			ID: "2", Name: "Paneer Tikka", Category: "Vejetaryen", Price: 8.5, TaxRate: 0.07,
			OptionGroups: models.OptionGroupList{
				{
					ID: "portion", Label: "Porsiyon", Type: models.OptionGroupSingle, Required: true, Min: 1, Max: 1,
					Options: []models.Option{
						{ID: "half", Name: "Yarım", PriceDelta: 0},
						{ID: "full", Name: "Tam", PriceDelta: 3.0},
					},
				},
				{
					ID: "addons", Label: "Ekstralar", Type: models.OptionGroupMulti, Min: 0, Max: 3,
					Options: []models.Option{
						{ID: "cheese", Name: "Ekstra Peynir", PriceDelta: 1.5},
						{ID: "spicy", Name: "Ekstra Acı", PriceDelta: 0.5},
						{ID: "dip", Name: "Nane Sos", PriceDelta: 0.7},
					},
				},
			},
		},
		{
			ID: "3", Name: "Tereyağlı Naan", Category: "Ekmek", Price: 2.5, TaxRate: 0.07,
			OptionGroups: models.OptionGroupList{},
		},
	}
}

func seedTables() []models.DiningTable {
	return []models.DiningTable{
		{ID: "t1", Label: "T1", Seats: 4},
		{ID: "t2", Label: "T2", Seats: 4},
		{ID: "t3", Label: "T3", Seats: 4},
		{ID: "t4", Label: "T4", Seats: 4},
		{ID: "t5", Label: "T5", Seats: 6},
		{ID: "t6", Label: "T6", Seats: 2},
	}
}
