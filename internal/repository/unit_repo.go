package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitpos/internal/model"
)

// UnitRepository is the data access contract for declared unit conversions.
// Conversion records are owned exclusively by their product; every listing is
// product-scoped.
type UnitRepository interface {
	Create(ctx context.Context, u *model.UnitConversion) error
	CreateTx(tx *gorm.DB, u *model.UnitConversion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UnitConversion, error)
	// ListByProduct returns the product's units in catalog order
	// (BASE first, then ascending conversion factor).
	ListByProduct(ctx context.Context, productID uuid.UUID, includeInactive bool) ([]model.UnitConversion, error)
	Update(ctx context.Context, u *model.UnitConversion) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBase(ctx context.Context, productID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) Create(ctx context.Context, u *model.UnitConversion) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unitRepo) CreateTx(tx *gorm.DB, u *model.UnitConversion) error {
	return tx.Create(u).Error
}

func (r *unitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.UnitConversion, error) {
	var u model.UnitConversion
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *unitRepo) ListByProduct(ctx context.Context, productID uuid.UUID, includeInactive bool) ([]model.UnitConversion, error) {
	var units []model.UnitConversion
	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("unit_type = 'BASE' DESC").Order("conversion_factor ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) Update(ctx context.Context, u *model.UnitConversion) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UnitConversion{}, id).Error
}

func (r *unitRepo) CountBase(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UnitConversion{}).
		Where("product_id = ? AND unit_type = ?", productID, model.UnitTypeBase).
		Count(&count).Error
	return count, err
}

func (r *unitRepo) DB() *gorm.DB { return r.db }
