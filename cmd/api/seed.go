package main

import (
	"context"
	"log"

	"tienda/internal/domain/model"
	infraRepo "tienda/internal/infra/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var fixtureCatalog = []model.Product{
	{
		Title:       "iPhone 15 Pro",
		Description: "Smartphone Apple con chip A17 Pro y cámara de 48 MP",
		Code:        "APL-IP15P",
		Price:       1499,
		Stock:       15,
		Category:    model.CategoryCelular,
		Status:      true,
		Thumbnails:  pq.StringArray{"https://example.com/img/iphone15pro.png"},
	},
	{
		Title:       "MacBook Air M3",
		Description: "Notebook ultradelgada con chip Apple M3 y 512GB SSD",
		Code:        "APL-MBA-M3",
		Price:       1899,
		Stock:       10,
		Category:    model.CategoryNotebook,
		Status:      true,
		Thumbnails:  pq.StringArray{"https://example.com/img/macbookairm3.png"},
	},
	{
		Title:       "Apple Watch Series 10",
		Description: "Reloj inteligente con pantalla Retina y sensores de salud",
		Code:        "APL-WCH-S10",
		Price:       699,
		Stock:       25,
		Category:    model.CategorySmartwatch,
		Status:      true,
		Thumbnails:  pq.StringArray{"https://example.com/img/applewatchs10.png"},
	},
	{
		Title:       "AirPods Pro 2",
		Description: "Auriculares inalámbricos con cancelación de ruido activa",
		Code:        "APL-APP2",
		Price:       349,
		Stock:       30,
		Category:    model.CategoryAuriculares,
		Status:      true,
		Thumbnails:  pq.StringArray{"https://example.com/img/airpodspro2.png"},
	},
	{
		Title:       "iPad Pro 12.9",
		Description: "Tablet con pantalla ProMotion 120Hz y chip M2",
		Code:        "APL-IPAD-P129",
		Price:       1199,
		Stock:       8,
		Category:    model.CategoryGeneral,
		Status:      true,
		Thumbnails:  pq.StringArray{"https://example.com/img/ipadpro129.png"},
	},
}

// seedCatalog inserts the fixture products, but only into an empty table.
func seedCatalog(ctx context.Context, productRepo *infraRepo.ProductGormRepository, gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("seed: products table already has %d rows, skipping", count)
		return nil
	}

	for _, p := range fixtureCatalog {
		if _, err := productRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	log.Printf("seed: inserted %d products", len(fixtureCatalog))
	return nil
}
