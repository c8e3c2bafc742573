package units

import "unitpos/internal/model"

// StockCheck compares a requested quantity against base-unit stock on hand.
// The comparison always uses unrounded values; rounding to 2 decimals is a
// display concern.
type StockCheck struct {
	RequiredBase float64
	Available    float64
	Valid        bool
	// Degraded marks a 1:1 fallback taken because the unit catalog could not
	// be consulted. Callers should warn rather than block.
	Degraded bool
}

// ValidateStock computes the base-unit quantity required for quantity of the
// given unit (nil unit means the quantity is already in base units) and
// checks it against availableBase. A non-positive factor on the unit is a
// data-integrity error, not a degraded case.
func ValidateStock(quantity float64, unit *model.UnitConversion, availableBase float64) (StockCheck, error) {
	required := quantity
	if unit != nil {
		res, err := Convert(quantity, unit, nil)
		if err != nil {
			return StockCheck{}, err
		}
		required = res.BaseQuantity
	}
	return StockCheck{
		RequiredBase: required,
		Available:    availableBase,
		Valid:        availableBase >= required,
	}, nil
}

// FallbackStockCheck is the degraded path: the catalog was unreachable, so
// the quantity is assumed to already be in base units (1:1) and the result is
// flagged so the caller can let the user proceed with a warning.
func FallbackStockCheck(quantity, availableBase float64) StockCheck {
	return StockCheck{
		RequiredBase: quantity,
		Available:    availableBase,
		Valid:        availableBase >= quantity,
		Degraded:     true,
	}
}
