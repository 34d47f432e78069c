package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Image is a photo attached to a work entry or an order.
type Image struct {
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type WorkLocation struct {
	Address string `json:"address"`
	City    string `gorm:"type:varchar(120)" json:"city"`
	State   string `gorm:"type:varchar(80)" json:"state"`
}

// Work is a portfolio entry: a job the labour has already finished.
type Work struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LabourID uuid.UUID `gorm:"type:uuid;index;not null" json:"labour_id"`

	Title       string                     `gorm:"not null" json:"title"`
	Description string                     `gorm:"type:text" json:"description"`
	Images      datatypes.JSONSlice[Image] `json:"images"`

	ClientName  string `gorm:"type:varchar(120)" json:"client_name"`
	ClientPhone string `gorm:"type:varchar(30)" json:"client_phone"`
	ClientEmail string `gorm:"type:varchar(150)" json:"client_email"`

	CompletedDate time.Time                   `gorm:"not null;index" json:"completed_date"`
	Amount        decimal.Decimal             `gorm:"type:numeric(12,2)" json:"amount"`
	Rating        *int                        `json:"rating,omitempty"` // 1-5
	Review        string                      `gorm:"type:text" json:"review,omitempty"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	Location      WorkLocation                `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	IsFeatured    bool                        `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Labour *User `gorm:"foreignKey:LabourID" json:"labour,omitempty"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
