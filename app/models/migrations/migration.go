package migrations

import (
	"github.com/farsishop/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Attribute{}, &models.Article{}, &models.Slider{}, &models.Order{})
}
