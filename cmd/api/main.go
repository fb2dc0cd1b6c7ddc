package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	eventport "github.com/devshark/function-dynamodb-task/internal/domain/port/event"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
	"github.com/devshark/function-dynamodb-task/internal/domain/usecase/balance"
	"github.com/devshark/function-dynamodb-task/internal/domain/usecase/ledger"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/handler"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/routes"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/event"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/event/kafka"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/logger"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/store/memory"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/store/postgres"
	timeProvider "github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/time"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	defaultAmount, err := decimal.NewFromString(cfg.Ledger.DefaultAmount)
	if err != nil {
		appLogger.Error("Invalid default amount in configuration", map[string]any{
			"value": cfg.Ledger.DefaultAmount,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	store, err := buildStore(cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to initialize store", map[string]any{
			"driver": cfg.Database.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}

	publisher := buildPublisher(cfg, appLogger)
	defer func() { _ = publisher.Close() }()

	balanceReader := balance.NewReader(store, defaultAmount, cfg.Ledger.DefaultCurrency, appLogger)
	ledgerService := ledger.NewService(store, publisher, tp, appLogger)

	balanceHandler := handler.NewBalanceHandler(balanceReader, appLogger)
	transactionHandler := handler.NewTransactionHandler(ledgerService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, balanceHandler, transactionHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// buildStore selects the transactional store adapter from configuration and
// provisions it with the configured seed users
func buildStore(cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) (storeport.TransactionalStore, error) {
	ctx := context.Background()

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		for _, id := range cfg.Ledger.SeedUsers {
			user, err := entity.NewUser(id, tp)
			if err != nil {
				return nil, err
			}
			store.PutUser(user)
		}
		return store, nil

	case "postgres":
		db, err := postgres.Connect(&postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			LogLevel:        cfg.Logger.Level,
		})
		if err != nil {
			return nil, err
		}

		provisioner := postgres.NewProvisioner(db, appLogger, tp)
		if err := provisioner.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		if err := provisioner.SeedUsers(ctx, cfg.Ledger.SeedUsers); err != nil {
			return nil, err
		}

		return postgres.NewStore(db, appLogger), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// buildPublisher selects the event publisher from configuration
func buildPublisher(cfg *config.Config, appLogger coreport.Logger) eventport.Publisher {
	if !cfg.Events.Enabled {
		return event.NewNoopPublisher()
	}

	appLogger.Info("Event publishing enabled", map[string]any{
		"brokers": cfg.Events.Brokers,
		"topic":   cfg.Events.Topic,
	})

	return kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, appLogger)
}
