package model

import (
	"time"

	"github.com/google/uuid"
)

// BranchStock tracks a product's on-hand quantity at one branch, always in
// base units. Branch scope is an explicit column — there is no ambient
// "current branch" anywhere in this module; every stock operation receives
// the branch id as a parameter.
type BranchStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_branch"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_branch"`
	Quantity  float64   `gorm:"type:numeric(16,3);not null;default:0"`
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (BranchStock) TableName() string { return "branch_stock" }
