package repository

import (
	"context"

	"harborsync/internal/model"

	"gorm.io/gorm"
)

type LineItemRepository interface {
	// ReplaceForInvoice deletes every line-item row for the invoice and
	// inserts the new set, inside the caller's transaction.
	ReplaceForInvoice(ctx context.Context, documentID string, items []model.InvoiceLineItem) error
	ListByInvoice(ctx context.Context, documentID string) ([]model.InvoiceLineItem, error)
	ListAll(ctx context.Context) ([]model.InvoiceLineItem, error)
}

type lineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) ReplaceForInvoice(ctx context.Context, documentID string, items []model.InvoiceLineItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", documentID).Delete(&model.InvoiceLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *lineItemRepository) ListByInvoice(ctx context.Context, documentID string) ([]model.InvoiceLineItem, error) {
	var items []model.InvoiceLineItem
	err := GetDB(ctx, r.db).
		Where("invoice_id = ?", documentID).
		Order("line_total desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemRepository) ListAll(ctx context.Context) ([]model.InvoiceLineItem, error) {
	var items []model.InvoiceLineItem
	if err := GetDB(ctx, r.db).Order("line_total desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
