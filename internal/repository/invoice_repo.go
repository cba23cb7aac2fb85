package repository

import (
	"context"

	"harborsync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository interface {
	Upsert(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, documentID string) (*model.Invoice, error)
	FindByIDWithChildren(ctx context.Context, documentID string) (*model.Invoice, error)
	List(ctx context.Context, page, limit int) ([]model.Invoice, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Upsert inserts the invoice or replaces every column of the existing
// row keyed by document_id.
func (r *invoiceRepository) Upsert(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).
		Omit("Categories", "LineItems").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}},
			UpdateAll: true,
		}).
		Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, documentID string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "document_id = ?", documentID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithChildren(ctx context.Context, documentID string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("total_cost desc")
		}).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_total desc")
		}).
		First(&invoice, "document_id = ?", documentID).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Invoice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
