package client

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitpos/internal/model"
)

func sellableUnit(symbol string, ut model.UnitType, st model.SalesType, factor float64) model.UnitConversion {
	return model.UnitConversion{
		ID:               uuid.New(),
		ProductID:        uuid.New(),
		UnitName:         symbol,
		UnitSymbol:       symbol,
		ConversionFactor: factor,
		UnitType:         ut,
		SalesType:        st,
		Active:           true,
	}
}

func TestSelectorDefaultsToBase(t *testing.T) {
	base := sellableUnit("LB", model.UnitTypeBase, model.SalesTypeBoth, 1)
	box := sellableUnit("BOX", model.UnitTypeSale, model.SalesTypeBoth, 12)

	s := NewUnitSelector(model.ChannelRetail)
	got := s.SetUnits([]model.UnitConversion{box, base})
	require.NotNil(t, got)
	assert.Equal(t, base.ID, got.ID)
}

func TestSelectorKeepsExplicitChoiceAcrossRefresh(t *testing.T) {
	base := sellableUnit("LB", model.UnitTypeBase, model.SalesTypeBoth, 1)
	box := sellableUnit("BOX", model.UnitTypeSale, model.SalesTypeBoth, 12)

	s := NewUnitSelector(model.ChannelRetail)
	s.SetUnits([]model.UnitConversion{base, box})
	got := s.Select(box.ID)
	require.NotNil(t, got)
	assert.Equal(t, box.ID, got.ID)

	// A catalog refresh with the same units keeps the cashier's choice.
	got = s.SetUnits([]model.UnitConversion{base, box})
	require.NotNil(t, got)
	assert.Equal(t, box.ID, got.ID)
}

func TestSelectorChannelSwitchDropsUnavailableUnit(t *testing.T) {
	base := sellableUnit("LB", model.UnitTypeBase, model.SalesTypeBoth, 1)
	sack := sellableUnit("SACK", model.UnitTypeSale, model.SalesTypeWholesale, 50)

	s := NewUnitSelector(model.ChannelWholesale)
	s.SetUnits([]model.UnitConversion{base, sack})
	got := s.Select(sack.ID)
	require.NotNil(t, got)
	assert.Equal(t, sack.ID, got.ID)

	// The sack is wholesale-only; switching to retail falls back to BASE.
	got = s.SetChannel(model.ChannelRetail)
	require.NotNil(t, got)
	assert.Equal(t, base.ID, got.ID)
}

func TestSelectorEmptyCatalogSelectsNothing(t *testing.T) {
	s := NewUnitSelector(model.ChannelRetail)
	assert.Nil(t, s.SetUnits(nil))
	assert.Nil(t, s.Selected())
}
