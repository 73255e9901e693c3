package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Slider struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Link         *string   `gorm:"size:500" json:"link"`
	Image        string    `gorm:"size:500;not null" json:"image"`
	DisplayOrder int       `gorm:"not null;default:0" json:"order"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Slider) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
