package http

import (
	"github.com/gofiber/fiber/v2"

	alertapp "github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/internal/application/auth"
	"github.com/raktsetu/raktsetu-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	DonationUC  *usecase.DonationUseCase
	InventoryUC *usecase.InventoryUseCase
	AlertUC     *alertapp.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos; refresh valida su propio token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer access token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido). Las rutas literales van antes de /:id.
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/donors", userHandler.ListDonors)
	users.Get("/hospitals", userHandler.ListHospitals)
	users.Get("/authorities", userHandler.ListAuthorities)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Donations (protegido)
	donations := protected.Group("/donations")
	donationHandler := NewDonationHandler(deps.DonationUC)
	donations.Get("/", donationHandler.List)
	donations.Post("/", donationHandler.Create)
	donations.Get("/:id", donationHandler.Get)
	donations.Put("/:id", donationHandler.Update)
	donations.Delete("/:id", donationHandler.Delete)
	donations.Get("/:id/certificate", donationHandler.Certificate)

	// Inventory (protegido)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/summary", inventoryHandler.Summary)
	inventory.Get("/hospital/:id", inventoryHandler.HospitalInventory)
	inventory.Get("/:id", inventoryHandler.Get)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/", alertHandler.Create)
	alerts.Get("/nearby", alertHandler.Nearby)
	alerts.Get("/:id", alertHandler.Get)
	alerts.Put("/:id", alertHandler.Update)
	alerts.Put("/:id/resolve", alertHandler.Resolve)
	alerts.Delete("/:id", alertHandler.Delete)
}
