package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mishura/internal/analysis"
	"mishura/internal/auth"
	"mishura/internal/cache"
	"mishura/internal/config"
	"mishura/internal/consultation"
	"mishura/internal/db"
	"mishura/internal/imaging"
	"mishura/internal/logger"
	"mishura/internal/payment"
	"mishura/internal/server"
	"mishura/internal/storage"
	"mishura/internal/stylist"
	"mishura/internal/user"
	"mishura/internal/wallet"
)

// @title MISHURA API
// @version 2.6.1
// @description AI stylist backend: outfit analysis, comparison, balance and payments.
// @host localhost:8001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	hashPassword := flag.Bool("hash-password", false, "read an admin password from stdin, print its ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword {
		if err := printPasswordHash(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger.Init()
	logger.Info("Starting MISHURA API")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.Environment, cfg.LogLevel)

	logger.Info("Connecting to database...", "driver", cfg.DatabaseDriver)
	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analysisCache, closeCache, err := cache.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}
	defer closeCache()

	imageStore, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize image storage: %v", err)
	}

	var model stylist.Model
	if cfg.AIConfigured() {
		gemini, err := stylist.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITemperature)
		if err != nil {
			logger.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		model = gemini
		logger.Info("Gemini model configured", "model", cfg.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set, analysis endpoints will answer 503")
	}

	ai := stylist.NewService(model, analysisCache, imaging.NewOptimizer(0, 0), stylist.Options{
		MaxRetries:     cfg.AIMaxRetries,
		RetryDelay:     cfg.AIRetryDelay,
		RequestTimeout: cfg.AIRequestTimeout,
	})

	users := user.NewRepository(database)
	wallets := wallet.NewRepository(database, users, cfg.DefaultBalance)
	consultations := consultation.NewRepository(database)
	payments := payment.NewRepository(database)

	gateway := payment.NewGateway(cfg)
	if gateway == nil {
		logger.Warn("payment gateway credentials not set, payments are disabled", "gateway", cfg.PaymentGateway)
	} else {
		logger.Info("payment gateway configured", "gateway", gateway.Name())
	}

	srv := server.New(cfg, server.Dependencies{
		Ping:          func(ctx context.Context) error { return db.Ping(ctx, database) },
		Users:         users,
		Wallets:       wallets,
		Consultations: consultations,
		Payments:      payments,
		AI:            ai,
		Analysis:      analysis.NewService(ai, wallets, consultations, imageStore, cfg.ConsultationPrice),
		Payment:       payment.NewService(payments, users, gateway, cfg.DefaultBalance, cfg.PaymentCurrency, cfg.PaymentReturnURL),
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func printPasswordHash(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		return auth.ErrEmptyPassword
	}

	hash, err := auth.HashPassword(scanner.Text())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
