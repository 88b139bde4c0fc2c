package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finire/internal/config"
	"finire/internal/handler"
	"finire/internal/notify"
	"finire/internal/repository/postgres"
	"finire/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// dispatchInterval is the reminder trigger cadence. Reminder times are
// stored at minute granularity and matched exactly, so firing more often
// than once a minute would double-send.
const dispatchInterval = time.Minute

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Finire server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	dayRepo := postgres.NewDayRepo(db)
	reminderRepo := postgres.NewReminderRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize notification channels
	var emailNotifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		emailNotifier = notify.NewResendClient(cfg.ResendAPIKey, cfg.MailFrom)
		logger.Info("Email channel configured")
	} else {
		logger.Warn("RESEND_API_KEY not set, reminder dispatch will fail until configured")
	}

	var telegramNotifier notify.Notifier
	if cfg.TelegramToken != "" {
		bot, err := tele.NewBot(tele.Settings{Token: cfg.TelegramToken})
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		telegramNotifier = notify.NewTelegramNotifier(bot)
		logger.Info("Telegram channel configured")
	}

	// Initialize services
	journalService := service.NewJournalService(dayRepo, logger)
	reminderService := service.NewReminderService(reminderRepo, userRepo, emailNotifier, telegramNotifier, cfg.AppURL, logger)

	// Initialize HTTP handler
	h := handler.NewHandler(journalService, reminderService, service.NewRealClock(), logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Routes([]byte(cfg.JWTSecret), userRepo),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start reminder dispatch job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runDispatchJob(ctx, reminderService, logger)

	// Start server in background
	go func() {
		logger.Info("Server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	cancel()

	logger.Info("Server stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}

// runDispatchJob fires the reminder dispatcher once per minute.
func runDispatchJob(ctx context.Context, reminderService *service.ReminderService, logger *zap.Logger) {
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Dispatch job stopped")
			return
		case now := <-ticker.C:
			summary, err := reminderService.Dispatch(ctx, now)
			if err != nil {
				logger.Error("Reminder dispatch failed", zap.Error(err))
				continue
			}
			if summary.Notified > 0 {
				logger.Info("Reminders sent", zap.Int("notified", summary.Notified))
			}
		}
	}
}
