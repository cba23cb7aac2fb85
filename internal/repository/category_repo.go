package repository

import (
	"context"

	"harborsync/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	// ReplaceForInvoice deletes every category row for the invoice and
	// inserts the new set. Callers run it inside a transaction alongside
	// the document upsert.
	ReplaceForInvoice(ctx context.Context, documentID string, categories []model.InvoiceCategory) error
	ListByInvoice(ctx context.Context, documentID string) ([]model.InvoiceCategory, error)
	ListAll(ctx context.Context) ([]model.InvoiceCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ReplaceForInvoice(ctx context.Context, documentID string, categories []model.InvoiceCategory) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", documentID).Delete(&model.InvoiceCategory{}).Error; err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}
	return db.Create(&categories).Error
}

func (r *categoryRepository) ListByInvoice(ctx context.Context, documentID string) ([]model.InvoiceCategory, error) {
	var categories []model.InvoiceCategory
	err := GetDB(ctx, r.db).
		Where("invoice_id = ?", documentID).
		Order("total_cost desc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]model.InvoiceCategory, error) {
	var categories []model.InvoiceCategory
	if err := GetDB(ctx, r.db).Order("total_cost desc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
