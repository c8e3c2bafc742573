package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"unitpos/internal/model"
)

// StockRepository reads and adjusts branch-scoped base-unit stock.
type StockRepository interface {
	// Get returns the stock row for (product, branch); a missing row reads
	// as zero stock, not an error.
	Get(ctx context.Context, productID, branchID uuid.UUID) (*model.BranchStock, error)
	// Adjust atomically increments (or decrements) the quantity, creating
	// the row on first touch.
	Adjust(ctx context.Context, productID, branchID uuid.UUID, delta float64) (*model.BranchStock, error)
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Get(ctx context.Context, productID, branchID uuid.UUID) (*model.BranchStock, error) {
	var s model.BranchStock
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return &model.BranchStock{ProductID: productID, BranchID: branchID, Quantity: 0}, nil
	}
	return &s, err
}

func (r *stockRepo) Adjust(ctx context.Context, productID, branchID uuid.UUID, delta float64) (*model.BranchStock, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "branch_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("branch_stock.quantity + ?", delta),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&model.BranchStock{
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  delta,
	}).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, productID, branchID)
}
