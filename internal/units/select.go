package units

import (
	"github.com/google/uuid"

	"unitpos/internal/model"
)

// DefaultSelection picks the unit a form should preselect from an
// already-filtered list:
//
//  1. keep the previous selection when it is still in the list,
//  2. else prefer the BASE unit,
//  3. else the first unit in catalog order,
//  4. else nil — no units declared, the caller falls back to the product's
//     implicit base unit and hides the selector.
//
// Re-run whenever the product or the sales channel changes: a unit valid for
// RETAIL may disappear from the filtered list once the channel switches.
func DefaultSelection(filtered []model.UnitConversion, previous *uuid.UUID) *model.UnitConversion {
	if len(filtered) == 0 {
		return nil
	}
	if previous != nil {
		if u := FindByID(filtered, *previous); u != nil {
			return u
		}
	}
	if base := FindBase(filtered); base != nil {
		return base
	}
	return &filtered[0]
}
