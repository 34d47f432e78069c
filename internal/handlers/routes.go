package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/metrics"
	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/upload"
)

type Options struct {
	DB          *gorm.DB
	Log         *zap.Logger
	Sessions    *Sessions
	Uploads     *upload.Store
	Google      *GoogleOAuthHandler // nil disables Google sign-in
	Development bool
}

// NewApp builds the fiber app with every route mounted.
func NewApp(o Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(o.Log, o.Development),
		// room for the multipart envelope so oversized images reach our own check
		BodyLimit: int(o.Uploads.MaxBytes) + 1<<20,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(o.Log))
	app.Use(middleware.LoadSession(o.Sessions.Config()))

	app.Static("/uploads", o.Uploads.Dir)
	app.Get("/metrics", metrics.Handler())

	authH := NewAuthHandler(o.DB, o.Sessions, o.Log)
	homeH := NewHomeHandler(o.DB, o.Log)
	profileH := NewProfileHandler(o.DB, o.Uploads, o.Log)
	labourH := NewLabourHandler(o.DB, o.Log)
	professionH := NewProfessionHandler(o.DB, o.Log)
	orderH := NewOrderHandler(o.DB, o.Log)

	app.Get("/", homeH.Root)
	app.Get("/home", homeH.Home)

	// auth
	app.Get("/login", authH.LoginPage)
	app.Post("/login", authH.Login)
	app.Post("/register", authH.Register)
	app.Get("/logout", authH.Logout)
	if o.Google != nil {
		app.Get("/auth/google/start", o.Google.GoogleStart)
		app.Get("/auth/google/callback", o.Google.GoogleCallback)
	}

	// profile
	app.Get("/profile/customer", profileH.Customer)
	app.Get("/profile/labour", profileH.Labour)
	app.Get("/edit-profile", profileH.Edit)
	app.Post("/update-profile", profileH.Update)

	// labour
	app.Get("/find-labour", labourH.FindLabour)
	app.Get("/labour/:id", labourH.Detail)
	app.Get("/professions", professionH.GetProfessions)
	labourOnly := middleware.RequireRole(models.RoleLabour)
	app.Post("/add-work", labourOnly, labourH.AddWork)
	app.Post("/update-wage", labourOnly, labourH.UpdateWage)

	// orders
	app.Post("/orders", middleware.RequireRole(models.RoleCustomer), orderH.Create)
	app.Post("/orders/:id/status", middleware.RequireSession(), orderH.UpdateStatus)
	app.Post("/orders/:id/review", middleware.RequireRole(models.RoleCustomer), orderH.Review)

	app.Post("/calculator", Calculate)

	app.Use(NotFound)
	return app
}
