package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Monetary fields are integer cents everywhere on the wire; fractional cents
// are never transmitted or stored.

type CreateProductRequest struct {
	SKU                 string `json:"sku"             validate:"required,min=2,max=40"`
	Name                string `json:"name"            validate:"required,min=2,max=120"`
	Category            string `json:"category"        validate:"required"`
	BaseUnitSymbol      string `json:"base_unit_symbol"`
	CostPriceCents      int64  `json:"cost_price_cents"      validate:"min=0"`
	RetailPriceCents    int64  `json:"retail_price_cents"    validate:"min=0"`
	WholesalePriceCents int64  `json:"wholesale_price_cents" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name                *string `json:"name"     validate:"omitempty,min=2,max=120"`
	Category            *string `json:"category"`
	CostPriceCents      *int64  `json:"cost_price_cents"      validate:"omitempty,min=0"`
	RetailPriceCents    *int64  `json:"retail_price_cents"    validate:"omitempty,min=0"`
	WholesalePriceCents *int64  `json:"wholesale_price_cents" validate:"omitempty,min=0"`
}

type AdjustStockRequest struct {
	BranchID string  `json:"branch_id" validate:"required,uuid"`
	Delta    float64 `json:"delta"     validate:"required"`
	Reason   string  `json:"reason"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	SKU      string `form:"sku"`
	Name     string `form:"name"`
	Category string `form:"category"`
	// Active filter: "false" = inactive only, "all" = everything,
	// anything else = active only (default).
	Active string `form:"active"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID                  string `json:"id"`
	SKU                 string `json:"sku"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	BaseUnitSymbol      string `json:"base_unit_symbol"`
	CostPriceCents      int64  `json:"cost_price_cents"`
	RetailPriceCents    int64  `json:"retail_price_cents"`
	WholesalePriceCents int64  `json:"wholesale_price_cents"`
	Active              bool   `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type BranchStockResponse struct {
	ProductID string  `json:"product_id"`
	BranchID  string  `json:"branch_id"`
	Quantity  float64 `json:"quantity"`
	// Display is Quantity rounded to 2 decimals; the raw value above is what
	// arithmetic must use.
	Display string `json:"display"`
}
