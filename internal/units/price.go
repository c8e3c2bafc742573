package units

import "unitpos/internal/model"

// ResolveUnitPrice derives the price in cents to charge for one unit of the
// product on the given channel. Explicit unit prices win over derived ones:
// a set, positive override on the unit is returned as-is; otherwise the
// product's base-unit price for the channel applies.
//
// The fallback is intentionally NOT scaled by the conversion factor: a unit
// with no override is priced identically to one base unit even when it
// represents a box of 12. Call sites rely on this for presentation units
// with factor-1 semantics; changing it requires a product-owner decision.
func ResolveUnitPrice(p *model.Product, u *model.UnitConversion, channel model.Channel) int64 {
	if u == nil {
		return p.BasePrice(channel)
	}
	if override, ok := u.PriceOverride(channel); ok {
		return override
	}
	return p.BasePrice(channel)
}
