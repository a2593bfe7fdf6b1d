// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/infrastructure/config"
	"ledgerhouse/internal/infrastructure/storage/postgres"
	"ledgerhouse/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@ledgerhouse.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE lower(email) = lower($1)`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_active, is_admin, version)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, 1)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	locationID := id.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO cat_locations (id, code, name, type, allow_negative, is_default)
		VALUES ($1, 'WH-001', 'Main Warehouse', 'warehouse', false, true)
		ON CONFLICT (code) DO NOTHING
	`, locationID)
	if err != nil {
		return fmt.Errorf("seed location: %w", err)
	}

	customers := []struct {
		code, name, email, terms string
	}{
		{"CUST-001", "Acme Industries", "billing@acme.example", "net_30"},
		{"CUST-002", "Globex Corporation", "ap@globex.example", "net_15"},
		{"CUST-003", "Initech LLC", "accounts@initech.example", "due_on_receipt"},
	}
	for _, c := range customers {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_customers (id, code, name, email, payment_terms)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), c.code, c.name, c.email, c.terms)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.code, err)
		}
	}

	vendors := []struct {
		code, name string
		termsDays  int
	}{
		{"VEND-001", "Office Supplies Co", 30},
		{"VEND-002", "Cloud Hosting Inc", 15},
	}
	for _, v := range vendors {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_vendors (id, code, name, payment_terms_days)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), v.code, v.name, v.termsDays)
		if err != nil {
			return fmt.Errorf("seed vendor %s: %w", v.code, err)
		}
	}

	products := []struct {
		code, name, ptype, unit string
		unitPrice, taxRate      string
		tracked                 bool
	}{
		{"PROD-001", "Standard Widget", "goods", "ea", "25.00", "20", true},
		{"PROD-002", "Premium Widget", "goods", "ea", "60.00", "20", true},
		{"SVC-001", "Consulting Hour", "service", "hr", "150.00", "20", false},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, type, unit, unit_price, tax_rate, tracked)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), p.code, p.name, p.ptype, p.unit, p.unitPrice, p.taxRate, p.tracked)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.code, err)
		}
	}

	log.Info("demo data seeded")
	return nil
}
