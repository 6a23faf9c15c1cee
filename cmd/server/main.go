package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/bazaar-backend/internal/config"
	"github.com/Skotchmaster/bazaar-backend/internal/es"
	"github.com/Skotchmaster/bazaar-backend/internal/events"
	"github.com/Skotchmaster/bazaar-backend/internal/httpserver"
	"github.com/Skotchmaster/bazaar-backend/internal/mailer"
	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
	"github.com/Skotchmaster/bazaar-backend/internal/search"
	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/pkg/db"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_error", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(models.All()...); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	var producer *events.Producer
	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka_close_error", "error", err)
			}
		}()
	} else {
		logger.Warn("kafka_disabled", "reason", "no brokers configured")
	}

	var searchSvc *search.Service
	var indexer service.Indexer
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("es_connect_error", "error", err)
			os.Exit(1)
		}
		searchSvc = search.New(client, cfg.ESIndex)
		indexer = searchSvc
	} else {
		logger.Warn("search_disabled", "reason", "ES_URL not configured")
	}

	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		logger.Warn("mailer_disabled", "reason", "SMTP_HOST not configured")
	}

	store := repo.New(database)

	deps := httpserver.Deps{
		Logger:        logger,
		DB:            database,
		JWTSecret:     cfg.JWTSecret,
		SecureCookies: cfg.SecureCookies,
		Auth: &service.AuthService{
			Repo:      store,
			JWTSecret: cfg.JWTSecret,
			Mailer:    sender,
			FrontURL:  config.EnvDefault("FRONTEND_URL", "http://localhost:3000"),
		},
		Catalog: &service.CatalogService{
			Repo:   store,
			Index:  indexer,
			Events: publisher,
		},
		Orders: &service.OrderService{
			Repo:   store,
			Mailer: sender,
			Events: publisher,
		},
		Content:   &service.ContentService{Repo: store},
		Dashboard: &service.DashboardService{Repo: store},
		Search:    searchSvc,
	}

	e := httpserver.New(deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown_started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	logger.Info("shutdown_complete")
}
