package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unitpos/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies idempotent SQL patches for constraints GORM cannot express
// (partial unique indexes).
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

// RunMigrations applies AutoMigrate plus the schema patches. Exposed
// separately so integration tests can run it against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.UnitConversion{},
		&model.BranchStock{},
		&model.UnitPriceHistory{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Each statement is guarded by an existence check so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// One active BASE unit per product — the service guards this too, but
		// the constraint makes the invariant hold under concurrent writes.
		{"partial unique index on BASE units", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_unit_conversions_one_base') THEN
    CREATE UNIQUE INDEX uq_unit_conversions_one_base
        ON unit_conversions (product_id)
        WHERE unit_type = 'BASE';
  END IF;
END $$`},
		// Hot path: list a product's active units ordered for display.
		{"index on active units per product", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_unit_conversions_product_active') THEN
    CREATE INDEX idx_unit_conversions_product_active
        ON unit_conversions (product_id, conversion_factor)
        WHERE active;
  END IF;
END $$`},
		// Price history is read newest-first per unit.
		{"index on price history per unit", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_unit_price_history_unit') THEN
    CREATE INDEX idx_unit_price_history_unit
        ON unit_price_history (unit_id, created_at DESC);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
