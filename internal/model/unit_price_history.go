package model

import (
	"time"

	"github.com/google/uuid"
)

// UnitPriceHistory records each change to a unit's price overrides.
// Rows are immutable — never updated or deleted. They are written
// asynchronously by the catalog worker when an update event carries a price
// change.
type UnitPriceHistory struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnitID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RetailBefore    *int64
	RetailAfter     *int64
	WholesaleBefore *int64
	WholesaleAfter  *int64
	Reason          string `gorm:"not null;default:'manual'"`
	CreatedAt       time.Time
}

func (UnitPriceHistory) TableName() string { return "unit_price_history" }
