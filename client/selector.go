package client

import (
	"sync"

	"github.com/google/uuid"

	"unitpos/internal/model"
	"unitpos/internal/units"
)

// UnitSelector holds the unit picked for a sale line and re-resolves it
// whenever the catalog or the channel changes. Selection rules: keep the
// current unit if it is still sellable, else the BASE unit, else the first
// unit on offer, else none.
type UnitSelector struct {
	mu       sync.Mutex
	all      []model.UnitConversion
	channel  model.Channel
	selected *model.UnitConversion
}

func NewUnitSelector(channel model.Channel) *UnitSelector {
	return &UnitSelector{channel: channel}
}

// SetUnits replaces the catalog snapshot and re-resolves the selection.
func (s *UnitSelector) SetUnits(all []model.UnitConversion) *model.UnitConversion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = all
	return s.reselect()
}

// SetChannel switches the sales channel and re-resolves the selection; a unit
// not sellable on the new channel is dropped for the default.
func (s *UnitSelector) SetChannel(channel model.Channel) *model.UnitConversion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channel = channel
	return s.reselect()
}

// Select sets an explicit choice by id; unknown ids resolve to the default.
func (s *UnitSelector) Select(id uuid.UUID) *model.UnitConversion {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := units.ActiveForChannel(s.all, s.channel)
	s.selected = units.DefaultSelection(filtered, &id)
	return s.selected
}

// Selected returns the current selection, nil when nothing is sellable.
func (s *UnitSelector) Selected() *model.UnitConversion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *UnitSelector) reselect() *model.UnitConversion {
	filtered := units.ActiveForChannel(s.all, s.channel)
	var previous *uuid.UUID
	if s.selected != nil {
		previous = &s.selected.ID
	}
	s.selected = units.DefaultSelection(filtered, previous)
	return s.selected
}
