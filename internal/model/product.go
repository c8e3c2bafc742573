package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel selects which price list applies to a sale.
type Channel string

const (
	ChannelRetail    Channel = "RETAIL"
	ChannelWholesale Channel = "WHOLESALE"
)

func (c Channel) Valid() bool {
	return c == ChannelRetail || c == ChannelWholesale
}

// Product is a stock-keeping item. Stock is always counted in the product's
// implicit base unit (BaseUnitSymbol); declared UnitConversion records are a
// presentation/input convenience layered on top. Prices are base-unit prices
// in integer cents.
type Product struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU                 string    `gorm:"uniqueIndex;not null"`
	Name                string    `gorm:"index;not null"`
	Category            string    `gorm:"not null"`
	BaseUnitSymbol      string    `gorm:"not null;default:'UNIDAD'"`
	CostPriceCents      int64     `gorm:"not null;default:0"`
	RetailPriceCents    int64     `gorm:"not null;default:0"`
	WholesalePriceCents int64     `gorm:"not null;default:0"`
	Active              bool      `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BasePrice returns the product's base-unit price in cents for the channel.
func (p *Product) BasePrice(c Channel) int64 {
	if c == ChannelWholesale {
		return p.WholesalePriceCents
	}
	return p.RetailPriceCents
}
