package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vitorduarteebb/otica2/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express on its own (partial unique indexes, extensions).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Also used by the
// integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Store{},
		&model.Category{},
		&model.User{},
		&model.Product{},
		&model.StoreProduct{},
		&model.Seller{},
		&model.Customer{},
		&model.Supplier{},
		&model.Employee{},
		&model.Payroll{},
		&model.CashTillSession{},
		&model.CashFlow{},
		&model.Sale{},
		&model.SaleItem{},
		&model.StockMovement{},
		&model.Order{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The two partial unique indexes are what actually enforce "at most one open
// till per store / per user" under concurrency; the service-level checks only
// produce friendlier errors.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_open_till_per_store') THEN
		    CREATE UNIQUE INDEX uniq_open_till_per_store
		        ON cash_till_sessions (store_id)
		        WHERE status = 'aberto';
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_open_till_per_user') THEN
		    CREATE UNIQUE INDEX uniq_open_till_per_user
		        ON cash_till_sessions (opened_by_id)
		        WHERE status = 'aberto';
		  END IF;
		END $$`,
		// quantity must never go negative even if a code path skips the
		// conditional UPDATE guard
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_store_products_quantity') THEN
		    ALTER TABLE store_products
		      ADD CONSTRAINT chk_store_products_quantity CHECK (quantity >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sales_store_date') THEN
		    CREATE INDEX idx_sales_store_date ON sales (store_id, sale_date);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cash_flows_store_created') THEN
		    CREATE INDEX idx_cash_flows_store_created ON cash_flows (store_id, created_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
