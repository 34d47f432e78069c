package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in-progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status. Any known status may follow any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	LabourID   uuid.UUID `gorm:"type:uuid;index;not null" json:"labour_id"`

	Service     string          `gorm:"not null" json:"service"`
	Description string          `gorm:"type:text" json:"description"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`
	Address     Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time `gorm:"index" json:"completed_date,omitempty"`

	CustomerRating *int                       `json:"customer_rating,omitempty"` // 1-5
	CustomerReview string                     `gorm:"type:text" json:"customer_review,omitempty"`
	Images         datatypes.JSONSlice[Image] `json:"images"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Labour   *User `gorm:"foreignKey:LabourID" json:"labour,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return
}

// IsParty reports whether the user is the customer or the labour of the order.
func (o *Order) IsParty(userID uuid.UUID) bool {
	return o.CustomerID == userID || o.LabourID == userID
}
