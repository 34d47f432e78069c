package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/testutil"
)

func seedLabours(t *testing.T, e *testEnv) {
	t.Helper()
	testutil.CreateLabour(t, e.db, "Rajesh Kumar", "Plumber", testutil.WithRating(4.5, 47), testutil.WithWages(25, 180))
	testutil.CreateLabour(t, e.db, "Amit Sharma", "Electrician", testutil.WithRating(4.8, 89), testutil.WithWages(30, 220))
	testutil.CreateLabour(t, e.db, "Suresh Patel", "Carpenter", testutil.WithRating(4.3, 34), testutil.WithWages(20, 150))
	testutil.CreateLabour(t, e.db, "Kiran Rao", "Cook", testutil.WithRating(3.9, 12), testutil.WithWages(45, 19))
	ghost := testutil.CreateLabour(t, e.db, "Ghost", "Plumber", testutil.WithRating(5, 100), testutil.WithWages(1, 1))
	testutil.Deactivate(t, e.db, ghost.ID)
	testutil.CreateCustomer(t, e.db, "John")
}

func names(t *testing.T, labours any) []string {
	t.Helper()
	list, ok := labours.([]any)
	require.True(t, ok)
	out := make([]string, 0, len(list))
	for _, l := range list {
		out = append(out, l.(map[string]any)["name"].(string))
	}
	return out
}

func TestFindLabourDefaults(t *testing.T) {
	e := newEnv(t)
	seedLabours(t, e)

	d := data(t, e.get(t, "/find-labour", ""))
	assert.Equal(t, []string{"Amit Sharma", "Rajesh Kumar", "Suresh Patel", "Kiran Rao"}, names(t, d["labours"]))

	params := d["searchParams"].(map[string]any)
	assert.Equal(t, "rating", params["sortBy"])
	assert.Equal(t, "", params["search"])
	assert.Nil(t, d["user"])
	assert.ElementsMatch(t, []any{"Carpenter", "Cook", "Electrician", "Plumber"}, d["professions"])
}

func TestFindLabourMinRating(t *testing.T) {
	e := newEnv(t)
	seedLabours(t, e)

	d := data(t, e.get(t, "/find-labour?minRating=4.0", ""))
	list := d["labours"].([]any)
	require.Len(t, list, 3)
	for _, l := range list {
		m := l.(map[string]any)
		assert.GreaterOrEqual(t, m["rating"].(float64), 4.0)
		assert.Equal(t, "labour", m["user_type"])
		assert.Equal(t, true, m["is_active"])
	}
	assert.Equal(t, "4.0", d["searchParams"].(map[string]any)["minRating"])
}

// maxPrice matches when either the hourly or the daily wage is under it.
func TestFindLabourMaxPriceAcrossUnits(t *testing.T) {
	e := newEnv(t)
	seedLabours(t, e)

	d := data(t, e.get(t, "/find-labour?maxPrice=20", ""))
	assert.ElementsMatch(t, []string{"Suresh Patel", "Kiran Rao"}, names(t, d["labours"]))
}

func TestFindLabourInvalidNumbersIgnored(t *testing.T) {
	e := newEnv(t)
	seedLabours(t, e)

	d := data(t, e.get(t, "/find-labour?minRating=abc&maxPrice=NaN&profession=all", ""))
	assert.Len(t, d["labours"], 4)
}

func TestFindLabourSearchAndSort(t *testing.T) {
	e := newEnv(t)
	seedLabours(t, e)

	q := url.Values{"search": {"PLUMB"}}
	d := data(t, e.get(t, "/find-labour?"+q.Encode(), ""))
	assert.Equal(t, []string{"Rajesh Kumar"}, names(t, d["labours"]))

	d = data(t, e.get(t, "/find-labour?sortBy=price-low", ""))
	assert.Equal(t, []string{"Suresh Patel", "Rajesh Kumar", "Amit Sharma", "Kiran Rao"}, names(t, d["labours"]))
}

func TestFindLabourShowsViewer(t *testing.T) {
	e := newEnv(t)
	customer := testutil.CreateCustomer(t, e.db, "John")

	d := data(t, e.get(t, "/find-labour", e.cookieFor(t, customer)))
	assert.Equal(t, "John", d["user"].(map[string]any)["name"])
}

func TestLabourDetail(t *testing.T) {
	e := newEnv(t)
	labour := testutil.CreateLabour(t, e.db, "Rajesh", "Plumber")
	customer := testutil.CreateCustomer(t, e.db, "John")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		testutil.CreateWork(t, e.db, labour.ID, "Job", base.AddDate(0, 0, i))
	}
	rating := 5
	completed := base
	require.NoError(t, e.db.Create(&models.Order{CustomerID: customer.ID, LabourID: labour.ID, Service: "Reviewed",
		Status: models.OrderCompleted, CompletedDate: &completed, CustomerRating: &rating, CustomerReview: "Great"}).Error)
	require.NoError(t, e.db.Create(&models.Order{CustomerID: customer.ID, LabourID: labour.ID, Service: "Unrated"}).Error)

	d := data(t, e.get(t, "/labour/"+labour.ID.String(), ""))
	assert.Equal(t, "Rajesh", d["labour"].(map[string]any)["name"])

	works := d["works"].([]any)
	require.Len(t, works, detailWorksLimit)
	assert.Contains(t, works[0].(map[string]any)["completed_date"], "2024-01-08")

	reviews := d["reviews"].([]any)
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]any)
	assert.Equal(t, "Great", review["customer_review"])
	assert.Equal(t, "John", review["customer"].(map[string]any)["name"])
}

func TestLabourDetailNotFound(t *testing.T) {
	e := newEnv(t)
	customer := testutil.CreateCustomer(t, e.db, "John")

	for _, id := range []string{uuid.NewString(), "not-a-uuid", customer.ID.String()} {
		resp := e.get(t, "/labour/"+id, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, id)
		assert.Equal(t, false, decode(t, resp)["success"])
	}
}

func TestAddWorkListedFirst(t *testing.T) {
	e := newEnv(t)
	labour := testutil.CreateLabour(t, e.db, "Rajesh", "Plumber")
	testutil.CreateWork(t, e.db, labour.ID, "Older job", time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC))
	cookie := e.cookieFor(t, labour)

	resp := e.postForm(t, "/add-work", url.Values{
		"title":         {"Bathroom refit"},
		"description":   {"New tiles and fittings"},
		"clientName":    {"Mrs. Gupta"},
		"completedDate": {"2024-02-20"},
	}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/labour", resp.Header.Get("Location"))

	d := data(t, e.get(t, "/profile/labour", cookie))
	works := d["works"].([]any)
	require.Len(t, works, 2)
	first := works[0].(map[string]any)
	assert.Equal(t, "Bathroom refit", first["title"])
	assert.Equal(t, "Mrs. Gupta", first["client_name"])
}

func TestAddWorkValidation(t *testing.T) {
	e := newEnv(t)
	labour := testutil.CreateLabour(t, e.db, "Rajesh", "Plumber")

	out := decode(t, e.postForm(t, "/add-work", url.Values{"completedDate": {"yesterday"}}, e.cookieFor(t, labour)))
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["errors"], "title")
	assert.Contains(t, out["errors"], "completedDate")
}

func TestAddWorkBlankDateIsNow(t *testing.T) {
	e := newEnv(t)
	labour := testutil.CreateLabour(t, e.db, "Rajesh", "Plumber")

	e.postForm(t, "/add-work", url.Values{"title": {"Today"}}, e.cookieFor(t, labour))

	var w models.Work
	require.NoError(t, e.db.Where("labour_id = ?", labour.ID).First(&w).Error)
	assert.WithinDuration(t, time.Now(), w.CompletedDate, time.Minute)
}

func TestLabourOnlyRoutes(t *testing.T) {
	e := newEnv(t)
	customer := testutil.CreateCustomer(t, e.db, "John")

	for _, cookie := range []string{"", e.cookieFor(t, customer)} {
		resp := e.postForm(t, "/add-work", url.Values{"title": {"Sneaky"}}, cookie)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		resp = e.postForm(t, "/update-wage", url.Values{"wagePerHour": {"1"}, "wagePerDay": {"1"}}, cookie)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	}

	var count int64
	require.NoError(t, e.db.Model(&models.Work{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateWage(t *testing.T) {
	e := newEnv(t)
	labour := testutil.CreateLabour(t, e.db, "Rajesh", "Plumber", testutil.WithWages(25, 180))
	cookie := e.cookieFor(t, labour)

	resp := e.postForm(t, "/update-wage", url.Values{"wagePerHour": {"27.5"}, "wagePerDay": {"200"}}, cookie)
	assert.Equal(t, "/profile/labour", resp.Header.Get("Location"))
	got := reload(t, e.db, labour)
	assert.Equal(t, 27.5, got.WagePerHour)
	assert.Equal(t, 200.0, got.WagePerDay)

	out := decode(t, e.postForm(t, "/update-wage", url.Values{"wagePerHour": {"lots"}, "wagePerDay": {"200"}}, cookie))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, 27.5, reload(t, e.db, labour).WagePerHour)
}
