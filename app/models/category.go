package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCategoryLevel is the deepest level a category may sit at (four levels, 0..3).
const MaxCategoryLevel = 3

type Category struct {
	ID                 string      `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name               string      `gorm:"size:255;not null" json:"name"`
	Description        string      `gorm:"type:text" json:"description"`
	Slug               string      `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Image              string      `gorm:"size:500" json:"image"`
	Level              int         `gorm:"not null;default:0" json:"level"`
	DisplayOrder       int         `gorm:"not null;default:0" json:"order"`
	IsActive           bool        `gorm:"not null" json:"isActive"`
	ShowOnHome         bool        `gorm:"not null;default:false" json:"showOnHome"`
	ShowProductsOnHome bool        `gorm:"not null;default:false" json:"showProductsOnHome"`
	ParentID           *string     `gorm:"size:36;index" json:"parentId"`
	Parent             *Category   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children           []Category  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products           []Product   `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	Attributes         []Attribute `gorm:"foreignKey:CategoryID" json:"attributes,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
