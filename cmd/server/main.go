// Package main is the entry point for the ledgerhouse API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ledgerhouse/internal/domain/auth"
	"ledgerhouse/internal/domain/catalogs/account"
	"ledgerhouse/internal/domain/ledger"
	"ledgerhouse/internal/infrastructure/config"
	v1 "ledgerhouse/internal/infrastructure/http/v1"
	"ledgerhouse/internal/infrastructure/storage/postgres"
	"ledgerhouse/internal/infrastructure/storage/postgres/auth_repo"
	"ledgerhouse/internal/infrastructure/storage/postgres/catalog_repo"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

// System account codes expected in the chart of accounts. Seeded by the
// initial migration.
const (
	codeCash            = "1000"
	codeAccountsRecv    = "1100"
	codeTaxReceivable   = "1300"
	codeAccountsPayable = "2000"
	codeTaxPayable      = "2200"
	codeSalesRevenue    = "4000"
	codeGeneralExpense  = "5000"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting ledgerhouse server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.Database.DSN(),
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Numerator ---
	numeratorService := numerator.New(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- System accounts ---
	accountRepo := catalog_repo.NewAccountRepo(txManager)
	systemAccounts, err := loadSystemAccounts(ctx, accountRepo)
	if err != nil {
		log.Fatalw("failed to resolve system accounts (run migrations first)", "error", err)
	}

	// --- Auth ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.AccessTokenExpiration,
	})

	authConfig := auth.DefaultServiceConfig()
	authConfig.RefreshTokenExpiry = cfg.JWT.RefreshTokenExpiration
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		txManager,
		jwtService,
		authConfig,
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		TxManager:      txManager,
		Logger:         log,
		JWTValidator:   jwtService,
		AuthService:    authService,
		Numerator:      numeratorService,
		Audit:          auditService,
		SystemAccounts: systemAccounts,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// loadSystemAccounts resolves the posting accounts by their well-known
// codes.
func loadSystemAccounts(ctx context.Context, repo account.Repository) (ledger.SystemAccounts, error) {
	var sys ledger.SystemAccounts

	resolve := func(code string) (*account.Account, error) {
		acc, err := repo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("system account %s: %w", code, err)
		}
		return acc, nil
	}

	cash, err := resolve(codeCash)
	if err != nil {
		return sys, err
	}
	receivable, err := resolve(codeAccountsRecv)
	if err != nil {
		return sys, err
	}
	taxRecv, err := resolve(codeTaxReceivable)
	if err != nil {
		return sys, err
	}
	payable, err := resolve(codeAccountsPayable)
	if err != nil {
		return sys, err
	}
	taxPayable, err := resolve(codeTaxPayable)
	if err != nil {
		return sys, err
	}
	revenue, err := resolve(codeSalesRevenue)
	if err != nil {
		return sys, err
	}
	expense, err := resolve(codeGeneralExpense)
	if err != nil {
		return sys, err
	}

	return ledger.SystemAccounts{
		Cash:               cash.ID,
		AccountsReceivable: receivable.ID,
		TaxReceivable:      taxRecv.ID,
		AccountsPayable:    payable.ID,
		TaxPayable:         taxPayable.ID,
		SalesRevenue:       revenue.ID,
		DefaultExpense:     expense.ID,
	}, nil
}
