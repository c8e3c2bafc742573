package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculatorCollapsesRapidEdits(t *testing.T) {
	results := make(chan LineTotal, 8)
	r := NewRecalculator(30*time.Millisecond, func(lt LineTotal) { results <- lt })
	defer r.Close()

	// Cashier types "1", "12", "12.5" in quick succession.
	r.Update(LineInput{Quantity: 1, UnitPriceCents: 1000})
	r.Update(LineInput{Quantity: 12, UnitPriceCents: 1000})
	r.Update(LineInput{Quantity: 12.5, UnitPriceCents: 1000})

	select {
	case lt := <-results:
		assert.Equal(t, 12.5, lt.Input.Quantity)
		assert.Equal(t, int64(12500), lt.TotalCents)
	case <-time.After(time.Second):
		t.Fatal("no result published")
	}

	// Only the final input produced a result.
	select {
	case lt := <-results:
		t.Fatalf("unexpected extra result: %+v", lt)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRecalculatorCloseDiscardsPending(t *testing.T) {
	results := make(chan LineTotal, 1)
	r := NewRecalculator(30*time.Millisecond, func(lt LineTotal) { results <- lt })

	r.Update(LineInput{Quantity: 2, UnitPriceCents: 500})
	r.Close()

	select {
	case lt := <-results:
		t.Fatalf("result published after close: %+v", lt)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLineTotalRoundsHalfAwayFromZero(t *testing.T) {
	// 0.5 × 15 cents = 7.5 → 8, not banker's 7.
	require.Equal(t, int64(8), lineTotalCents(LineInput{Quantity: 0.5, UnitPriceCents: 15}))
	require.Equal(t, int64(-8), lineTotalCents(LineInput{Quantity: -0.5, UnitPriceCents: 15}))
}
