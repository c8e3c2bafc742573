package client

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/shopspring/decimal"
)

// LineInput is what the cashier is editing: a quantity in the selected unit
// and that unit's resolved price.
type LineInput struct {
	Quantity       float64
	UnitPriceCents int64
}

// LineTotal is the recomputed result delivered after the input settles.
type LineTotal struct {
	Input      LineInput
	TotalCents int64
}

// Recalculator debounces line-total recomputation while the cashier types.
// Rapid edits collapse into one computation of the final input; Close discards
// anything still pending so a closed sale never receives a late total.
type Recalculator struct {
	debounced func(func())
	publish   func(LineTotal)

	mu     sync.Mutex
	latest LineInput

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRecalculator(wait time.Duration, publish func(LineTotal)) *Recalculator {
	if wait <= 0 {
		wait = 300 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Recalculator{
		debounced: debounce.New(wait),
		publish:   publish,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Update records the newest input and schedules a recomputation. Only the
// last input before the quiet period elapses is computed.
func (r *Recalculator) Update(in LineInput) {
	r.mu.Lock()
	r.latest = in
	r.mu.Unlock()

	r.debounced(func() {
		// The sale may have closed while the timer ran.
		if r.ctx.Err() != nil {
			return
		}
		r.mu.Lock()
		in := r.latest
		r.mu.Unlock()
		r.publish(LineTotal{Input: in, TotalCents: lineTotalCents(in)})
	})
}

// Close discards any pending recomputation.
func (r *Recalculator) Close() {
	r.cancel()
}

// lineTotalCents multiplies quantity by unit price in exact decimal arithmetic
// and rounds half away from zero, the same rule the server uses for cents.
func lineTotalCents(in LineInput) int64 {
	return decimal.NewFromFloat(in.Quantity).
		Mul(decimal.NewFromInt(in.UnitPriceCents)).
		Round(0).
		IntPart()
}
