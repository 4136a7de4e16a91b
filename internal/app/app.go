package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tokoshop/internal/config"
	"tokoshop/internal/handlers"
	"tokoshop/internal/middleware"
	"tokoshop/internal/models"
	"tokoshop/internal/repositories"
	"tokoshop/internal/services"
	"tokoshop/internal/storefront"
	"tokoshop/pkg/metrics"
	"tokoshop/pkg/rabbitmq"
)

// App is the wired storefront service.
type App struct {
	Fiber       *fiber.App
	Config      config.Config
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	DB          *gorm.DB
	AuthService *services.AuthService
	Viewers     *storefront.Viewers

	contact *services.ContactService
	mq      *rabbitmq.Client
}

// New opens the database, wires every component and registers the routes.
// It does not start listening.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}, &models.ContactMessage{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	a := &App{
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(cfg.ServiceName),
		DB:      db,
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	if cfg.SeedProducts {
		if err := seedProducts(productRepo, log); err != nil {
			return nil, err
		}
	}

	// --- Messaging ---
	var publisher services.Publisher
	if cfg.RabbitMQEnabled {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.ContactQueue}, log)
		if err != nil {
			// contact messages are still stored, only the broadcast is lost
			log.Warn("RabbitMQ unavailable, contact messages will not be published", zap.Error(err))
		} else {
			a.mq = mq
			publisher = mq
		}
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	a.AuthService = services.NewAuthService(userRepo, cfg.JWTSecret)
	a.contact = services.NewContactService(contactRepo, publisher, cfg.Contact, log.Named("contact"), a.Metrics)
	a.Viewers = storefront.NewViewers(
		storefront.NewCatalogClient(cfg.CatalogURL, cfg.CatalogTimeout),
		log.Named("storefront"),
		a.Metrics,
		cfg.ViewerTTL,
	)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, log)
	authHandler := handlers.NewAuthHandler(a.AuthService, log)
	storefrontHandler := handlers.NewStorefrontHandler(a.Viewers, a.contact, log)

	// --- Fiber ---
	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Metrics(a.Metrics))

	app.Get("/health", a.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(a.Metrics.Handler()))

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	auth := middleware.AuthRequired(a.AuthService, log)
	productHandler.RegisterRoutes(apiV1, auth)
	storefrontHandler.RegisterAdminRoutes(apiV1, auth)
	storefrontHandler.RegisterRoutes(app)

	a.Fiber = app
	return a, nil
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "connected",
		"rabbitmq": "disabled",
	}
	if a.mq != nil {
		status["rabbitmq"] = "connected"
	}

	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}

// StartConsumers starts the contact queue consumer when RabbitMQ is connected.
func (a *App) StartConsumers() error {
	if a.mq == nil {
		return nil
	}
	return a.mq.Consume(a.contact.HandleMessage)
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	a.Log.Info("Starting server", zap.String("port", a.Config.AppPort))
	return a.Fiber.Listen(a.Config.AppPort)
}

// Shutdown stops the HTTP server and releases the broker and database connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}
