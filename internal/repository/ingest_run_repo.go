package repository

import (
	"context"

	"harborsync/internal/model"

	"gorm.io/gorm"
)

type IngestRunRepository interface {
	Create(ctx context.Context, run *model.IngestRun) error
	Finish(ctx context.Context, run *model.IngestRun) error
	List(ctx context.Context, page, limit int) ([]model.IngestRun, int64, error)
}

type ingestRunRepository struct {
	db *gorm.DB
}

func NewIngestRunRepository(db *gorm.DB) IngestRunRepository {
	return &ingestRunRepository{db: db}
}

func (r *ingestRunRepository) Create(ctx context.Context, run *model.IngestRun) error {
	return GetDB(ctx, r.db).Create(run).Error
}

func (r *ingestRunRepository) Finish(ctx context.Context, run *model.IngestRun) error {
	return GetDB(ctx, r.db).Save(run).Error
}

func (r *ingestRunRepository) List(ctx context.Context, page, limit int) ([]model.IngestRun, int64, error) {
	var runs []model.IngestRun
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.IngestRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("started_at desc").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
