// Package units holds the pure core of the multi-unit engine: quantity
// conversion, unit price resolution, stock validation and the catalog
// filtering/ordering/selection contracts consumed by forms.
//
// Everything here operates on immutable snapshots passed in as arguments and
// performs no I/O, so the same functions back both the HTTP service and the
// terminal-side client, and the two always agree.
package units

import (
	"errors"

	"github.com/google/uuid"

	"unitpos/internal/model"
)

// ErrInvalidConversionFactor signals a data-integrity failure: a unit with a
// non-positive factor reached the engine. Factors are validated at creation
// time, so this is never guessed around — the computation is aborted.
var ErrInvalidConversionFactor = errors.New("unit has a non-positive conversion factor")

// ConversionResult is the transient outcome of a conversion. Quantities use
// double-precision arithmetic throughout; display rounding is applied by the
// presentation layer only, never before further arithmetic.
type ConversionResult struct {
	OriginalQuantity  float64
	FromUnitID        uuid.UUID
	ToUnitID          *uuid.UUID
	BaseQuantity      float64
	ConvertedQuantity float64
}

// Convert turns quantity expressed in from-units into base units, and into
// to-units when to is non-nil (the default target is the base unit).
// A quantity <= 0 yields a zero result without error: there is nothing to
// convert, which is not a failure.
func Convert(quantity float64, from *model.UnitConversion, to *model.UnitConversion) (ConversionResult, error) {
	res := ConversionResult{
		OriginalQuantity: quantity,
		FromUnitID:       from.ID,
	}
	if to != nil {
		id := to.ID
		res.ToUnitID = &id
	}

	if quantity <= 0 {
		res.OriginalQuantity = 0
		return res, nil
	}
	if from.ConversionFactor <= 0 {
		return ConversionResult{}, ErrInvalidConversionFactor
	}
	if to != nil && to.ConversionFactor <= 0 {
		return ConversionResult{}, ErrInvalidConversionFactor
	}

	res.BaseQuantity = quantity * from.ConversionFactor
	if to != nil {
		res.ConvertedQuantity = res.BaseQuantity / to.ConversionFactor
	} else {
		res.ConvertedQuantity = res.BaseQuantity
	}
	return res, nil
}
