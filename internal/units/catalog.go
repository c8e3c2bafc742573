package units

import (
	"sort"

	"github.com/google/uuid"

	"unitpos/internal/model"
)

// ActiveForChannel returns the active sales units usable on channel c:
// active, and SalesType BOTH or equal to the channel. This is the filtering
// contract cart/sale forms consume.
func ActiveForChannel(list []model.UnitConversion, c model.Channel) []model.UnitConversion {
	out := make([]model.UnitConversion, 0, len(list))
	for _, u := range list {
		if u.Active && u.SalesType.Allows(c) {
			out = append(out, u)
		}
	}
	return out
}

// ActiveUnits returns all active units with no channel filter — the contract
// purchasing and catalog-management screens consume.
func ActiveUnits(list []model.UnitConversion) []model.UnitConversion {
	out := make([]model.UnitConversion, 0, len(list))
	for _, u := range list {
		if u.Active {
			out = append(out, u)
		}
	}
	return out
}

// SortForDisplay orders units for selectors: BASE first, remaining units
// ascending by conversion factor. The sort is stable so equal factors keep
// catalog order.
func SortForDisplay(list []model.UnitConversion) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsBase() != list[j].IsBase() {
			return list[i].IsBase()
		}
		return list[i].ConversionFactor < list[j].ConversionFactor
	})
}

// FindBase returns the product's BASE unit record, or nil if none is present
// in the snapshot.
func FindBase(list []model.UnitConversion) *model.UnitConversion {
	for i := range list {
		if list[i].IsBase() {
			return &list[i]
		}
	}
	return nil
}

// FindByID returns the unit with the given id, or nil.
func FindByID(list []model.UnitConversion, id uuid.UUID) *model.UnitConversion {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
