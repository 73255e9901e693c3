package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderStatusLabels holds the Persian labels shown in the admin panel and exports.
var OrderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "در انتظار بررسی",
	OrderStatusConfirmed: "تایید شده",
	OrderStatusPreparing: "در حال آماده‌سازی",
	OrderStatusReady:     "آماده ارسال",
	OrderStatusDelivered: "تحویل شده",
	OrderStatusCancelled: "لغو شده",
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID     string          `gorm:"size:36;not null;index" json:"productId"`
	ProductName   string          `gorm:"size:255;not null" json:"productName"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	DesiredPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"desiredPrice"`
	CustomerName  string          `gorm:"size:255;not null" json:"customerName"`
	CustomerPhone string          `gorm:"size:20;not null;index" json:"customerPhone"`
	Status        OrderStatus     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	UserID        *string         `gorm:"size:36;index" json:"userId"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return
}
