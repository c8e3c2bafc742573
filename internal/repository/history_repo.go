package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitpos/internal/model"
)

// HistoryRepository persists immutable unit price-change records.
type HistoryRepository interface {
	Create(ctx context.Context, h *model.UnitPriceHistory) error
	ListByUnit(ctx context.Context, unitID uuid.UUID) ([]model.UnitPriceHistory, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) Create(ctx context.Context, h *model.UnitPriceHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historyRepo) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]model.UnitPriceHistory, error) {
	var rows []model.UnitPriceHistory
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
