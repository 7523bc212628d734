package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/weather-forecast-view/internal/api/http"
	"github.com/i474232898/weather-forecast-view/internal/config"
	"github.com/i474232898/weather-forecast-view/internal/scheduler"
	"github.com/i474232898/weather-forecast-view/internal/session"
	"github.com/i474232898/weather-forecast-view/internal/store"
	"github.com/i474232898/weather-forecast-view/internal/weather"
	"github.com/i474232898/weather-forecast-view/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound forecast calls. A zero timeout leaves
	// requests unbounded.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// The API key is handed to the provider once, here.
	provider := providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
		APIKey:            cfg.OpenWeatherAPIKey,
		BaseURL:           cfg.OpenWeatherBaseURL,
		RequestsPerSecond: cfg.OpenWeatherRPS,
		Burst:             cfg.OpenWeatherBurst,
	})
	service := weather.NewService(provider)

	// In-memory session registry with configured retention.
	sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxAge, func() *session.State {
		return session.New(service, weather.RealClock{})
	})

	// Scheduler that periodically drops idle sessions.
	sched := scheduler.New(sessions, cfg.SessionPruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-view",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-forecast-view",
			"sessions": sessions.Len(),
			"breaker":  provider.BreakerState(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, sessions)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
