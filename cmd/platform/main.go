package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hedgemark/platform/internal/config"
	"github.com/hedgemark/platform/internal/database"
	"github.com/hedgemark/platform/internal/identity"
	"github.com/hedgemark/platform/internal/notifications"
	"github.com/hedgemark/platform/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	zapLogger, err := logger.New(logLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	settings, err := config.Load(zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := database.NewRedis(settings.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to build redis client", zap.Error(err))
	}
	defer rdb.Close()

	publisher := notifications.NewPublisher(rdb, zapLogger)

	if settings.Postgres != nil {
		db, err := database.NewPostgres(*settings.Postgres)
		if err != nil {
			zapLogger.Fatal("Failed to connect to postgres", zap.Error(err))
		}

		provisioner := identity.NewService(zapLogger, db)
		provisionCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := provisioner.Provision(provisionCtx, config.DeribitMainAccountID); err != nil {
			cancel()
			zapLogger.Fatal("Failed to provision main account identity", zap.Error(err))
		}
		cancel()
	}

	zapLogger.Info("Service started",
		zap.String("service", settings.ServiceName),
		zap.String("environment", settings.Environment))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	alert := notifications.NewSystemAlert(settings.ServiceName, "shutdown", "service stopping")
	alert.Severity = notifications.SeverityInfo
	if err := publisher.PublishAlert(shutdownCtx, alert); err != nil {
		zapLogger.Warn("Failed to publish shutdown alert", zap.Error(err))
	}

	zapLogger.Info("Service stopped")
}
