package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	Slug          string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description   string              `gorm:"type:longtext" json:"description"`
	Images        []string            `gorm:"type:text;serializer:json" json:"images"`
	CategoryID    string              `gorm:"size:36;not null;index" json:"categoryId"`
	Category      *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsBestSelling bool                `gorm:"not null;default:false;index" json:"isBestSelling"`
	Price         decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"price"`
	Inventory     *int                `json:"inventory"`
	CreatedAt     time.Time           `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return
}
