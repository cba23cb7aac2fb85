package database

import (
	"fmt"

	"harborsync/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM and
// migrates the snapshot schema.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Invoice{},
		&model.InvoiceCategory{},
		&model.InvoiceLineItem{},
		&model.IngestRun{},
	)
}

// ResetSchema drops and recreates the snapshot tables, children before
// parent. Full re-initialization only; normal ingestion replaces rows
// per document and never drops tables.
func ResetSchema(db *gorm.DB) error {
	tables := []interface{}{
		&model.InvoiceLineItem{},
		&model.InvoiceCategory{},
		&model.Invoice{},
	}
	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return migrate(db)
}
