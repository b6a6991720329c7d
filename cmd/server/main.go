package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/config"
	"github.com/mamadbah2/aquafarm/internal/repository/mongodb"
	"github.com/mamadbah2/aquafarm/internal/repository/sheets"
	"github.com/mamadbah2/aquafarm/internal/scheduler"
	"github.com/mamadbah2/aquafarm/internal/server/handlers"
	"github.com/mamadbah2/aquafarm/internal/server/router"
	commandsvc "github.com/mamadbah2/aquafarm/internal/service/commands"
	reportingsvc "github.com/mamadbah2/aquafarm/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/aquafarm/internal/service/whatsapp"
	"github.com/mamadbah2/aquafarm/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/aquafarm/pkg/clients/whatsapp"
	"github.com/mamadbah2/aquafarm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	sheetsRepo, err := sheets.NewGoogleSheetRepository(startCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}
	ledger := sheets.NewLedger(sheetsRepo, logger.Named(baseLogger, "repo.ledger"))

	mongoRepo, err := mongodb.NewMongoDBRepository(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportingSvc := reportingsvc.NewService(mongoRepo, ledger, cfg.Schedule.Location(), logger.Named(baseLogger, "svc.reporting"))
	commandDispatcher := commandsvc.NewService(mongoRepo, ledger, reportingSvc, commandsvc.NewSessionManager(), cfg.Schedule.Location(), logger.Named(baseLogger, "svc.commands"))

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, only slash commands are understood")
	}

	whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, aiClient, commandDispatcher, logger.Named(baseLogger, "svc.whatsapp"))

	webhookHandler := handlers.NewWebhookHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
	pondHandler := handlers.NewPondHandler(reportingSvc, mongoRepo, logger.Named(baseLogger, "handlers.ponds"))
	engine := router.New(webhookHandler, pondHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.WithCORS(engine, cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("timezone", cfg.Schedule.Timezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
