package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attribute is a category-level facet such as "color" with its allowed values.
type Attribute struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Values     []string  `gorm:"type:text;serializer:json" json:"values"`
	CategoryID string    `gorm:"size:36;not null;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *Attribute) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
