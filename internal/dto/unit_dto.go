package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUnitRequest struct {
	UnitName         string  `json:"unit_name"         validate:"required,min=1,max=80"`
	UnitSymbol       string  `json:"unit_symbol"       validate:"required,min=1,max=16"`
	ConversionFactor float64 `json:"conversion_factor" validate:"required,gt=0"`
	UnitType         string  `json:"unit_type"         validate:"required,oneof=BASE PURCHASE SALE"`
	SalesType        string  `json:"sales_type"        validate:"omitempty,oneof=RETAIL WHOLESALE BOTH"`
	// nil or 0 both mean "no override".
	RetailPriceCents    *int64 `json:"retail_price_cents"    validate:"omitempty,min=0"`
	WholesalePriceCents *int64 `json:"wholesale_price_cents" validate:"omitempty,min=0"`
}

type UpdateUnitRequest struct {
	UnitName            *string  `json:"unit_name"         validate:"omitempty,min=1,max=80"`
	UnitSymbol          *string  `json:"unit_symbol"       validate:"omitempty,min=1,max=16"`
	ConversionFactor    *float64 `json:"conversion_factor" validate:"omitempty,gt=0"`
	UnitType            *string  `json:"unit_type"         validate:"omitempty,oneof=BASE PURCHASE SALE"`
	SalesType           *string  `json:"sales_type"        validate:"omitempty,oneof=RETAIL WHOLESALE BOTH"`
	RetailPriceCents    *int64   `json:"retail_price_cents"    validate:"omitempty,min=0"`
	WholesalePriceCents *int64   `json:"wholesale_price_cents" validate:"omitempty,min=0"`
	Active              *bool    `json:"active"`
}

// UnitFilter selects which view of a product's catalog to return.
// scope=sales requires channel; scope=all returns every active unit;
// scope=raw additionally includes inactive units (historical display).
type UnitFilter struct {
	Scope   string `form:"scope,default=all" validate:"oneof=sales all raw"`
	Channel string `form:"channel"           validate:"omitempty,oneof=RETAIL WHOLESALE"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UnitResponse struct {
	ID                  string  `json:"id"`
	ProductID           string  `json:"product_id"`
	UnitName            string  `json:"unit_name"`
	UnitSymbol          string  `json:"unit_symbol"`
	ConversionFactor    float64 `json:"conversion_factor"`
	UnitType            string  `json:"unit_type"`
	SalesType           string  `json:"sales_type"`
	RetailPriceCents    *int64  `json:"retail_price_cents"`
	WholesalePriceCents *int64  `json:"wholesale_price_cents"`
	Active              bool    `json:"active"`
	CreatedAt           string  `json:"created_at"`
}

type UnitListResponse struct {
	Data []UnitResponse `json:"data"`
}

type PriceHistoryEntry struct {
	ID              string `json:"id"`
	UnitID          string `json:"unit_id"`
	ProductID       string `json:"product_id"`
	RetailBefore    *int64 `json:"retail_before"`
	RetailAfter     *int64 `json:"retail_after"`
	WholesaleBefore *int64 `json:"wholesale_before"`
	WholesaleAfter  *int64 `json:"wholesale_after"`
	Reason          string `json:"reason"`
	CreatedAt       string `json:"created_at"`
}

type PriceHistoryResponse struct {
	Data []PriceHistoryEntry `json:"data"`
}
