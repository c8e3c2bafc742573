package dto

// ─── Conversion ──────────────────────────────────────────────────────────────

// Quantity is intentionally not validated as positive: a non-positive
// quantity converts to a zero result, it is not a request error.
type ConvertRequest struct {
	ProductID  string  `json:"product_id"   validate:"required,uuid"`
	Quantity   float64 `json:"quantity"`
	FromUnitID string  `json:"from_unit_id" validate:"required,uuid"`
	ToUnitID   *string `json:"to_unit_id"   validate:"omitempty,uuid"`
}

type ConvertResponse struct {
	OriginalQuantity  float64 `json:"original_quantity"`
	FromUnitID        string  `json:"from_unit_id"`
	ToUnitID          *string `json:"to_unit_id"`
	BaseQuantity      float64 `json:"base_quantity"`
	ConvertedQuantity float64 `json:"converted_quantity"`
}

// ─── Price resolution ────────────────────────────────────────────────────────

type PriceQuoteResponse struct {
	ProductID      string `json:"product_id"`
	UnitID         *string `json:"unit_id"`
	Channel        string `json:"channel"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Display        string `json:"display"`
}

// ─── Stock validation ────────────────────────────────────────────────────────

type ValidateStockRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	BranchID  string  `json:"branch_id"  validate:"required,uuid"`
	UnitID    *string `json:"unit_id"    validate:"omitempty,uuid"`
	Quantity  float64 `json:"quantity"   validate:"required,gt=0"`
}

type ValidateStockResponse struct {
	RequiredBase float64 `json:"required_base"`
	Available    float64 `json:"available"`
	Valid        bool    `json:"valid"`
	Degraded     bool    `json:"degraded"`
	// Display strings round to 2 decimals; the raw fields above are the ones
	// the comparison used.
	RequiredDisplay  string `json:"required_display"`
	AvailableDisplay string `json:"available_display"`
}
