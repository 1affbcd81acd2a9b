package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bmimportados/backoffice-backend/api/routes"
	"github.com/bmimportados/backoffice-backend/internal/auth"
	"github.com/bmimportados/backoffice-backend/internal/clients"
	"github.com/bmimportados/backoffice-backend/internal/products"
	"github.com/bmimportados/backoffice-backend/internal/quotes"
	"github.com/bmimportados/backoffice-backend/internal/summary"
	"github.com/bmimportados/backoffice-backend/internal/users"
	"github.com/bmimportados/backoffice-backend/pkg/auth/session"
	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/db"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
	"github.com/bmimportados/backoffice-backend/pkg/mailer"
	"github.com/bmimportados/backoffice-backend/pkg/metrics"
	"github.com/bmimportados/backoffice-backend/pkg/migrate"
	"github.com/bmimportados/backoffice-backend/pkg/redis"
	"github.com/bmimportados/backoffice-backend/pkg/storage/uploader"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	clientsService, err := clients.NewService(clients.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	var notifier quotes.Notifier
	if cfg.Mail.APIKey != "" {
		mailClient, err := mailer.NewClient(cfg.Mail, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mail client", err)
			os.Exit(1)
		}
		notifier = mailClient
	} else {
		logg.Warn(context.Background(), "mail api key not set, quote notifications disabled")
	}

	quotesService, err := quotes.NewService(quotes.ServiceParams{
		Repo:       quotes.NewRepository(dbClient.DB()),
		Tx:         dbClient,
		Notifier:   notifier,
		QuoteInbox: cfg.Mail.QuoteInbox,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotes service", err)
		os.Exit(1)
	}

	summaryService, err := summary.NewService(summary.ServiceParams{
		Repo: summary.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create summary service", err)
		os.Exit(1)
	}

	var uploadClient *uploader.Client
	if cfg.Storage.UploadURL != "" {
		uploadClient, err = uploader.NewClient(cfg.Storage)
		if err != nil {
			logg.Error(context.Background(), "failed to create upload client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "storage upload url not set, uploads disabled")
	}

	httpMetrics := metrics.NewHTTPMetrics()

	handler := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		Sessions:        sessionManager,
		Metrics:         httpMetrics,
		AuthService:     authService,
		ClientsService:  clientsService,
		ProductsService: productsService,
		QuotesService:   quotesService,
		SummaryService:  summaryService,
		Uploader:        uploadClient,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}
