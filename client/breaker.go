package client

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding calls to the catalog API. A POS terminal keeps
// selling during a backend outage; the breaker turns a hanging backend into
// an immediate failure the caller can degrade from.

// BreakerState represents the current circuit breaker state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal — requests flow
	BreakerOpen                         // tripped — fast-fail all requests
	BreakerHalfOpen                     // probing — one request in flight at a time
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned when Execute is called while the breaker is open,
// or while a half-open probe is already in flight.
var ErrBreakerOpen = errors.New("catalog circuit breaker is open")

// BreakerConfig holds tunable parameters.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open
	SuccessThreshold int           // consecutive probe successes to close
	OpenTimeout      time.Duration // how long to stay open before probing
}

// DefaultBreakerConfig suits a terminal on the shop LAN: trip fast, probe soon.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

// Breaker tracks consecutive failures and gates requests accordingly.
// While half-open, only a single probe request may be in flight: concurrent
// callers fast-fail instead of stampeding a backend that is still recovering.
type Breaker struct {
	mu        sync.Mutex
	cfg       BreakerConfig
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
	probing   bool
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &Breaker{cfg: cfg}
}

// State reports the breaker's effective state: an open breaker whose timeout
// has elapsed reads as half-open, since the next Execute would probe.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.openedAt) >= b.cfg.OpenTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

// Execute runs fn unless the breaker gates it off, and feeds the outcome back
// into the failure/success tally.
func (b *Breaker) Execute(fn func() error) error {
	probe, gateErr := b.acquire()
	if gateErr != nil {
		return gateErr
	}
	err := fn()
	b.record(probe, err)
	return err
}

// acquire decides whether the call may proceed. It returns probe=true when the
// call is the half-open probe, whose outcome alone moves the breaker on.
func (b *Breaker) acquire() (probe bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return false, nil
	case BreakerOpen:
		if time.Since(b.openedAt) < b.cfg.OpenTimeout {
			return false, ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.successes = 0
		b.probing = true
		return true, nil
	default: // BreakerHalfOpen
		if b.probing {
			return false, ErrBreakerOpen
		}
		b.probing = true
		return true, nil
	}
}

func (b *Breaker) record(probe bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if probe {
		b.probing = false
	}

	if err != nil {
		if b.state == BreakerHalfOpen {
			b.trip()
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
		return
	}

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

// trip must be called under the lock.
func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = time.Now()
	b.failures = 0
	b.successes = 0
}
