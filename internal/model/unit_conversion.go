package model

import (
	"time"

	"github.com/google/uuid"
)

// UnitType classifies a declared unit. BASE is the product's native
// stock-counting unit; PURCHASE units only apply to incoming stock and SALE
// units only to outgoing stock.
type UnitType string

const (
	UnitTypeBase     UnitType = "BASE"
	UnitTypePurchase UnitType = "PURCHASE"
	UnitTypeSale     UnitType = "SALE"
)

// SalesType restricts which sales channel(s) may use a unit at its stated price.
type SalesType string

const (
	SalesTypeRetail    SalesType = "RETAIL"
	SalesTypeWholesale SalesType = "WHOLESALE"
	SalesTypeBoth      SalesType = "BOTH"
)

// Allows reports whether a unit with this SalesType may be used on channel c.
func (s SalesType) Allows(c Channel) bool {
	return s == SalesTypeBoth || string(s) == string(c)
}

// UnitConversion declares one unit a product can be bought or sold in.
// ConversionFactor is how many base units equal one of this unit; the BASE
// record's factor is 1 and immutable once created. Price overrides are
// optional — nil or 0 both mean "no override" (the wire cannot tell them
// apart, see PriceOverride).
type UnitConversion struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID           uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitName            string    `gorm:"not null"`
	UnitSymbol          string    `gorm:"not null"`
	ConversionFactor    float64   `gorm:"type:numeric(14,4);not null"`
	UnitType            UnitType  `gorm:"not null"`
	SalesType           SalesType `gorm:"not null;default:'BOTH'"`
	RetailPriceCents    *int64
	WholesalePriceCents *int64
	Active              bool `gorm:"not null;default:true"`
	CreatedAt           time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (UnitConversion) TableName() string { return "unit_conversions" }

func (u *UnitConversion) IsBase() bool { return u.UnitType == UnitTypeBase }

// PriceOverride returns the unit's own price for the channel, or ok=false when
// no override is set. A stored zero counts as unset: legacy callers wrote 0
// to mean "no override" and a genuine zero price is not representable.
func (u *UnitConversion) PriceOverride(c Channel) (int64, bool) {
	p := u.RetailPriceCents
	if c == ChannelWholesale {
		p = u.WholesalePriceCents
	}
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}
