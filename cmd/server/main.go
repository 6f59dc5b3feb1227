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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/adapter/httpapi"
	"github.com/dquesada/tellercore-backend/internal/adapter/rates"
	"github.com/dquesada/tellercore-backend/internal/adapter/repository/postgres"
	"github.com/dquesada/tellercore-backend/internal/adapter/sms"
	"github.com/dquesada/tellercore-backend/internal/idgen"
	"github.com/dquesada/tellercore-backend/internal/usecase/teller"
	"github.com/dquesada/tellercore-backend/internal/vault"
)

const httpAddr = ":8080"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 1. Credential vault key. A deployment secret: required, never
	// defaulted, never hardcoded.
	vaultKey := os.Getenv("VAULT_KEY")
	if vaultKey == "" {
		logger.Fatal("VAULT_KEY is required (base64-encoded 32-byte key)")
	}
	v, err := vault.NewFromBase64(vaultKey)
	if err != nil {
		logger.Fatal("invalid VAULT_KEY", zap.Error(err))
	}

	// 2. Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars
		// (Docker friendly)
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := getEnv("DB_PASSWORD", "postgres")
		dbname := getEnv("DB_NAME", "tellercore")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	clientRepo := postgres.NewClientRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	txRepo := postgres.NewTransactionRepository(db)

	// 3. External collaborators
	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})
	codeChannel := sms.NewChannel(rdb, sms.DefaultTTL, logger)
	rateProvider := rates.NewBCCRClient(getEnv("RATES_URL", "http://localhost:9090"))

	// 4. Orchestrator
	svc := teller.NewService(
		v,
		rateProvider,
		codeChannel,
		idgen.NewULIDGenerator(),
		clientRepo,
		accountRepo,
		txRepo,
		logger,
	)
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		logger.Fatal("failed to load state", zap.Error(err))
	}

	// 5. HTTP server
	api := httpapi.NewServer(svc, logger)
	srv := &http.Server{
		Addr:    httpAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", httpAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down
// the server.
func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("http server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
