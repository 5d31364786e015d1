package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	alertapp "github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/internal/application/auth"
	"github.com/raktsetu/raktsetu-api/internal/application/usecase"
	"github.com/raktsetu/raktsetu-api/internal/infrastructure/geocode"
	infrapdf "github.com/raktsetu/raktsetu-api/internal/infrastructure/pdf"
	"github.com/raktsetu/raktsetu-api/internal/infrastructure/postgres"
	httpRouter "github.com/raktsetu/raktsetu-api/internal/interfaces/http"
	"github.com/raktsetu/raktsetu-api/pkg/config"
	"github.com/raktsetu/raktsetu-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:           cfg.JWT.Secret,
		AccessExpMinutes: cfg.JWT.AccessExpMinutes,
		RefreshExpDays:   cfg.JWT.RefreshExpDays,
		Issuer:           cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)

	certificates := infrapdf.NewCertificateGenerator()
	donationUC := usecase.NewDonationUseCase(donationRepo, userRepo, certificates, usecase.DonationPolicy{
		AllowReopen: cfg.Donation.AllowReopen,
	})

	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, userRepo)

	geocoder := geocode.NewGoogleClient(
		cfg.Geocode.APIKey,
		time.Duration(cfg.Geocode.TimeoutSeconds)*time.Second,
		log,
	)
	alertUC := alertapp.NewUseCase(alertRepo, userRepo, geocoder, alertRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		DonationUC:  donationUC,
		InventoryUC: inventoryUC,
		AlertUC:     alertUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
