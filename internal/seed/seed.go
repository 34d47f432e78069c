// Package seed loads the bundled sample accounts, works and orders.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/utils"
)

//go:embed data.yaml
var sampleData []byte

const dateLayout = "2006-01-02"

type Data struct {
	Customers []Account `yaml:"customers"`
	Labours   []Account `yaml:"labours"`
	Works     []Work    `yaml:"works"`
	Orders    []Order   `yaml:"orders"`
}

type Address struct {
	Street  string `yaml:"street"`
	City    string `yaml:"city"`
	State   string `yaml:"state"`
	ZipCode string `yaml:"zipCode"`
}

type Location struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
}

type Account struct {
	Name         string   `yaml:"name"`
	Email        string   `yaml:"email"`
	Password     string   `yaml:"password"`
	Phone        string   `yaml:"phone"`
	Age          int      `yaml:"age"`
	Address      Address  `yaml:"address"`
	Location     Location `yaml:"location"`
	Profession   string   `yaml:"profession"`
	Experience   string   `yaml:"experience"`
	WagePerHour  float64  `yaml:"wagePerHour"`
	WagePerDay   float64  `yaml:"wagePerDay"`
	Rating       float64  `yaml:"rating"`
	TotalReviews int      `yaml:"totalReviews"`
	ProfileImage string   `yaml:"profileImage"`
}

type Image struct {
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
}

type WorkLocation struct {
	Address string `yaml:"address"`
	City    string `yaml:"city"`
	State   string `yaml:"state"`
}

type Work struct {
	Labour        string       `yaml:"labour"`
	Title         string       `yaml:"title"`
	Description   string       `yaml:"description"`
	Images        []Image      `yaml:"images"`
	ClientName    string       `yaml:"clientName"`
	ClientPhone   string       `yaml:"clientPhone"`
	CompletedDate string       `yaml:"completedDate"`
	Amount        float64      `yaml:"amount"`
	Rating        *int         `yaml:"rating"`
	Review        string       `yaml:"review"`
	Tags          []string     `yaml:"tags"`
	Location      WorkLocation `yaml:"location"`
	Featured      bool         `yaml:"featured"`
}

type Order struct {
	Customer       string  `yaml:"customer"`
	Labour         string  `yaml:"labour"`
	Service        string  `yaml:"service"`
	Description    string  `yaml:"description"`
	Status         string  `yaml:"status"`
	Amount         float64 `yaml:"amount"`
	Address        Address `yaml:"address"`
	ScheduledDate  string  `yaml:"scheduledDate"`
	CompletedDate  string  `yaml:"completedDate"`
	CustomerRating *int    `yaml:"customerRating"`
	CustomerReview string  `yaml:"customerReview"`
	Images         []Image `yaml:"images"`
}

type Summary struct {
	Customers int
	Labours   int
	Works     int
	Orders    int
}

// Load parses the embedded sample data.
func Load() (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(sampleData, &d); err != nil {
		return nil, fmt.Errorf("parse sample data: %w", err)
	}
	return &d, nil
}

// Run wipes users, works and orders and loads d in one transaction.
func Run(ctx context.Context, db *gorm.DB, d *Data, log *zap.Logger) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Order{}, &models.Work{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		log.Info("cleared existing data")

		ids := map[string]models.User{}
		for _, a := range d.Customers {
			u, err := a.user(models.RoleCustomer)
			if err != nil {
				return err
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create customer %s: %w", a.Email, err)
			}
			ids[u.Email] = u
			sum.Customers++
		}
		for _, a := range d.Labours {
			u, err := a.user(models.RoleLabour)
			if err != nil {
				return err
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create labour %s: %w", a.Email, err)
			}
			ids[u.Email] = u
			sum.Labours++
		}

		for _, w := range d.Works {
			labour, ok := ids[w.Labour]
			if !ok {
				return fmt.Errorf("work %q: unknown labour %s", w.Title, w.Labour)
			}
			m, err := w.model(labour.ID)
			if err != nil {
				return err
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("create work %q: %w", w.Title, err)
			}
			sum.Works++
		}

		for _, o := range d.Orders {
			customer, ok := ids[o.Customer]
			if !ok {
				return fmt.Errorf("order %q: unknown customer %s", o.Service, o.Customer)
			}
			labour, ok := ids[o.Labour]
			if !ok {
				return fmt.Errorf("order %q: unknown labour %s", o.Service, o.Labour)
			}
			m, err := o.model(customer.ID, labour.ID)
			if err != nil {
				return err
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("create order %q: %w", o.Service, err)
			}
			sum.Orders++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	log.Info("seeding completed",
		zap.Int("customers", sum.Customers),
		zap.Int("labours", sum.Labours),
		zap.Int("works", sum.Works),
		zap.Int("orders", sum.Orders),
	)
	return sum, nil
}

func (a Account) user(role models.Role) (models.User, error) {
	hash, err := utils.HashPassword(a.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password for %s: %w", a.Email, err)
	}
	u := models.User{
		Name:         a.Name,
		Email:        a.Email,
		Password:     hash,
		Phone:        a.Phone,
		Age:          a.Age,
		Address:      models.Address(a.Address),
		Location:     models.Location(a.Location),
		UserType:     role,
		ProfileImage: a.ProfileImage,
		Rating:       a.Rating,
		TotalReviews: a.TotalReviews,
		IsActive:     true,
	}

	if role == models.RoleLabour {
		u.LabourProfile = models.LabourProfile{
			Profession:  a.Profession,
			Experience:  a.Experience,
			WagePerHour: a.WagePerHour,
			WagePerDay:  a.WagePerDay,
		}
	}
	return u, nil
}

func (w Work) model(labourID uuid.UUID) (models.Work, error) {
	completed, err := time.Parse(dateLayout, w.CompletedDate)
	if err != nil {
		return models.Work{}, fmt.Errorf("work %q completedDate: %w", w.Title, err)
	}
	return models.Work{
		LabourID:      labourID,
		Title:         w.Title,
		Description:   w.Description,
		Images:        images(w.Images, completed),
		ClientName:    w.ClientName,
		ClientPhone:   w.ClientPhone,
		CompletedDate: completed,
		Amount:        decimal.NewFromFloat(w.Amount),
		Rating:        w.Rating,
		Review:        w.Review,
		Tags:          datatypes.JSONSlice[string](w.Tags),
		Location:      models.WorkLocation(w.Location),
		IsFeatured:    w.Featured,
	}, nil
}

func (o Order) model(customerID, labourID uuid.UUID) (models.Order, error) {
	status := models.OrderStatus(o.Status)
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("order %q: unknown status %q", o.Service, o.Status)
	}
	scheduled, err := optionalDate(o.ScheduledDate)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %q scheduledDate: %w", o.Service, err)
	}
	completed, err := optionalDate(o.CompletedDate)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %q completedDate: %w", o.Service, err)
	}
	uploaded := time.Now()
	if completed != nil {
		uploaded = *completed
	}
	return models.Order{
		CustomerID:     customerID,
		LabourID:       labourID,
		Service:        o.Service,
		Description:    o.Description,
		Status:         status,
		Amount:         decimal.NewFromFloat(o.Amount),
		Address:        models.Address(o.Address),
		ScheduledDate:  scheduled,
		CompletedDate:  completed,
		CustomerRating: o.CustomerRating,
		CustomerReview: o.CustomerReview,
		Images:         images(o.Images, uploaded),
	}, nil
}

func images(in []Image, at time.Time) datatypes.JSONSlice[models.Image] {
	out := make(datatypes.JSONSlice[models.Image], 0, len(in))
	for _, img := range in {
		out = append(out, models.Image{URL: img.URL, Caption: img.Caption, UploadedAt: at})
	}
	return out
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
