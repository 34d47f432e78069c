// Package search turns the optional find-labour parameters into a filter and an
// ordering over active labour accounts.
//
// Every parameter is optional. An empty, unparsable or non-finite value leaves its
// filter off, so dropping a parameter can only widen the result set.
package search

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

// AllProfessions is the dropdown value that disables the profession filter.
const AllProfessions = "all"

type SortKey string

const (
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	// SortExperience orders by rating; experience is free text and has no usable order.
	SortExperience SortKey = "experience"
)

type Params struct {
	Search     string
	Profession string
	MinRating  *float64
	MaxPrice   *float64
	SortBy     SortKey
}

// ParseParams normalises raw query-string values.
func ParseParams(search, profession, minRating, maxPrice, sortBy string) Params {
	p := Params{
		Search:     strings.TrimSpace(search),
		Profession: strings.TrimSpace(profession),
		MinRating:  parseNumber(minRating),
		MaxPrice:   parseNumber(maxPrice),
		SortBy:     SortKey(strings.TrimSpace(sortBy)),
	}
	if strings.EqualFold(p.Profession, AllProfessions) {
		p.Profession = ""
	}
	return p
}

func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Apply scopes q to the matching labour accounts in the requested order.
func (p Params) Apply(q *gorm.DB) *gorm.DB {
	q = q.Model(&models.User{}).
		Where("user_type = ?", models.RoleLabour).
		Where("is_active = ?", true)

	if p.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(p.Search)) + "%"
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(profession) LIKE ? ESCAPE '\' OR LOWER(address_city) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if p.Profession != "" {
		q = q.Where("profession = ?", p.Profession)
	}
	if p.MinRating != nil {
		q = q.Where("rating >= ?", *p.MinRating)
	}
	if p.MaxPrice != nil {
		// hourly and daily wages are compared against the same number on purpose
		q = q.Where("wage_per_hour <= ? OR wage_per_day <= ?", *p.MaxPrice, *p.MaxPrice)
	}

	for _, col := range p.Order() {
		q = q.Order(col)
	}
	return q
}

// Order returns the sort columns for the requested key.
func (p Params) Order() []clause.OrderByColumn {
	switch p.SortBy {
	case SortRating, SortExperience:
		return []clause.OrderByColumn{desc("rating")}
	case SortPriceLow:
		return []clause.OrderByColumn{{Column: clause.Column{Name: "wage_per_hour"}}}
	case SortPriceHigh:
		return []clause.OrderByColumn{desc("wage_per_hour")}
	default:
		return []clause.OrderByColumn{desc("rating"), desc("total_reviews")}
	}
}

func desc(col string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Find runs the search and returns the full result set.
func Find(db *gorm.DB, p Params) ([]models.User, error) {
	var out []models.User
	if err := p.Apply(db).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Professions lists the distinct professions offered by labour accounts.
func Professions(db *gorm.DB) ([]string, error) {
	var out []string
	err := db.Model(&models.User{}).
		Where("user_type = ?", models.RoleLabour).
		Where("profession <> ?", "").
		Distinct("profession").
		Order("profession").
		Pluck("profession", &out).Error
	return out, err
}
