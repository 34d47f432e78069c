package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleLabour   Role = "labour"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleLabour
}

var (
	ErrInvalidRole          = errors.New("user type must be customer or labour")
	ErrLabourFieldsRequired = errors.New("labour accounts need profession, experience and wages")
	ErrCustomerLabourFields = errors.New("customer accounts cannot carry labour fields")
)

type Address struct {
	Street  string `gorm:"type:varchar(200)" json:"street"`
	City    string `gorm:"type:varchar(120)" json:"city"`
	State   string `gorm:"type:varchar(80)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
}

// Location is only filled by the sample data; nothing queries it yet.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// LabourProfile holds the fields that exist only on labour accounts.
type LabourProfile struct {
	Profession  string  `gorm:"type:varchar(120);index" json:"profession,omitempty"`
	Experience  string  `gorm:"type:varchar(120)" json:"experience,omitempty"`
	WagePerHour float64 `json:"wage_per_hour,omitempty"`
	WagePerDay  float64 `json:"wage_per_day,omitempty"`
}

// internal/models/user.go
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Phone    string    `gorm:"type:varchar(30)" json:"phone"`
	Age      int       `json:"age"`

	Address  Address  `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	UserType      Role `gorm:"type:varchar(20);not null;index" json:"user_type"`
	LabourProfile `gorm:"embedded"`

	ProfileImage string  `gorm:"type:text" json:"profile_image"`
	Rating       float64 `gorm:"default:0;index" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`
	IsActive     bool    `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return u.Validate()
}

func (u *User) IsLabour() bool {
	return u.UserType == RoleLabour
}

// AsLabour returns the labour variant of the account. ok is false for customers.
func (u *User) AsLabour() (profile LabourProfile, ok bool) {
	if !u.IsLabour() {
		return LabourProfile{}, false
	}
	return u.LabourProfile, true
}

// Validate checks that labour fields are present exactly when the account is a labour one.
func (u *User) Validate() error {
	switch u.UserType {
	case RoleLabour:
		p := u.LabourProfile
		if strings.TrimSpace(p.Profession) == "" || strings.TrimSpace(p.Experience) == "" ||
			p.WagePerHour < 0 || p.WagePerDay < 0 {
			return ErrLabourFieldsRequired
		}
	case RoleCustomer:
		if u.LabourProfile != (LabourProfile{}) {
			return ErrCustomerLabourFields
		}
	default:
		return ErrInvalidRole
	}
	return nil
}

// ProfilePath is where the account's own profile page lives.
func (u *User) ProfilePath() string {
	return ProfilePathFor(u.UserType)
}

func ProfilePathFor(r Role) string {
	if r == RoleCustomer {
		return "/profile/customer"
	}
	return "/profile/labour"
}
