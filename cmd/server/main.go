package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/advisor"
	"tailorshop/internal/auth"
	"tailorshop/internal/cache"
	"tailorshop/internal/config"
	"tailorshop/internal/db"
	"tailorshop/internal/events"
	"tailorshop/internal/handler"
	"tailorshop/internal/logger"
	"tailorshop/internal/model"
	"tailorshop/internal/notifier"
	"tailorshop/internal/repository"
	"tailorshop/internal/router"
	"tailorshop/internal/scheduler"
	"tailorshop/internal/service"
	"tailorshop/internal/storage"
)

// @title Tailor Shop API
// @version 1.0
// @description Bookings, tailor workspace, admin dashboard and services catalog for a tailoring shop.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger.New(cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	gormDB, err := db.Open(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		slog.Warn("redis unreachable, catalog cache degrades to misses and token writes will fail", "addr", cfg.RedisAddr, "error", err)
	}

	disk, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	var storageRoot string
	if local, ok := disk.(*storage.LocalDisk); ok {
		storageRoot = local.Root()
	}

	mailer, err := notifier.NewMailer(ctx, cfg.SES, cfg.ShopName)
	if err != nil {
		return err
	}
	sender := notifier.NewSender(cfg.Twilio)

	publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return err
	}
	defer publisher.Close()

	if cfg.AMQP.URL != "" {
		consumer, err := events.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue,
			[]string{model.EventBookingCreated, model.EventBookingStatusChanged})
		if err != nil {
			return err
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx, events.NewNotificationHandler(sender, cfg.ShopName)); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("notification consumer stopped", "error", err)
			}
		}()
	}

	var generator advisor.Generator
	gemini, err := advisor.NewGeminiGenerator(ctx, cfg.Gemini, cfg.ShopName)
	if err != nil {
		return err
	}
	if gemini != nil {
		generator = gemini
	} else {
		slog.Warn("GEMINI_API_KEY not set, style advice returns a canned reply")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	serviceRepo := repository.NewServiceRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, service.AuthOptions{
		AdminEmail: cfg.AdminEmail,
		PublicURL:  cfg.PublicURL,
	})
	bookingService := service.NewBookingService(bookingRepo, userRepo, disk, publisher, service.ShopInfo{
		Name:     cfg.ShopName,
		WhatsApp: cfg.ShopWhatsApp,
	})
	userService := service.NewUserService(userRepo, bookingRepo)
	adminService := service.NewAdminService(userRepo, bookingRepo)
	catalogService := service.NewCatalogService(serviceRepo, cacheClient, disk)
	adviceService := service.NewAdviceService(generator)
	seedService := service.NewSeedService(userRepo, bookingRepo, serviceRepo, nil)

	reminders := scheduler.NewReminderService(bookingRepo, sender, cfg.ShopName)
	if err := reminders.Start(ctx, cfg.ReminderCron); err != nil {
		return err
	}
	defer reminders.Stop()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Booking: handler.NewBookingHandler(bookingService),
		Tailor:  handler.NewTailorHandler(bookingService),
		Admin:   handler.NewAdminHandler(adminService, bookingService),
		Service: handler.NewServiceHandler(catalogService),
		Advice:  handler.NewAdviceHandler(adviceService),
		Seed:    handler.NewSeedHandler(seedService, catalogService),
	}, authService, storageRoot)

	slog.Info("swagger documentation available", "url", swaggerURL(cfg))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		slog.Info("http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// swaggerURL builds the docs URL; SWAGGER_HOST may already carry a scheme.
func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	switch {
	case host == "":
		return "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
