package ledger

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"
)

// FeeQuoter computes the fee for a payment from the card's previous fee.
type FeeQuoter interface {
	GetFee(lastFee decimal.NullDecimal) decimal.Decimal
}

// FeeOracle holds the globally shared fee multiplier. The multiplier is
// re-seeded at construction, rotated on a fixed interval by a background
// goroutine, and guarded by a single-writer/multi-reader lock so concurrent
// payments only ever contend on the momentary hourly rotation. It is not
// persisted across restarts.
type FeeOracle struct {
	mu         sync.RWMutex
	multiplier decimal.Decimal

	interval time.Duration
	rng      *rand.Rand
	logger   *slog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewFeeOracle(logger *slog.Logger, interval time.Duration) *FeeOracle {
	o := &FeeOracle{
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger.With(slog.String("component", "fee_oracle")),
		done:     make(chan struct{}),
	}
	o.rotate()
	return o
}

// Start launches the rotation goroutine. Stop cancels it and waits for it to
// exit; the oracle keeps serving GetFee after Stop, it just stops rotating.
func (o *FeeOracle) Start() {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()

		for {
			select {
			case <-o.done:
				return
			case <-ticker.C:
				o.rotate()
				o.logger.Info("fee multiplier rotated",
					slog.String("multiplier", o.CurrentMultiplier().String()))
			}
		}
	}()
}

func (o *FeeOracle) Stop() {
	close(o.done)
	o.wg.Wait()
}

// GetFee returns the current multiplier when the card has no previous fee,
// otherwise the previous fee scaled by the current multiplier. Only the read
// lock is taken.
func (o *FeeOracle) GetFee(lastFee decimal.NullDecimal) decimal.Decimal {
	multiplier := o.CurrentMultiplier()
	if !lastFee.Valid {
		return multiplier
	}
	return lastFee.Decimal.Mul(multiplier)
}

func (o *FeeOracle) CurrentMultiplier() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.multiplier
}

// rotate draws a fresh multiplier uniformly from [0, 2). Called from the
// constructor and the rotation goroutine only, so rng needs no extra guard.
func (o *FeeOracle) rotate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.multiplier = decimal.NewFromFloat(o.rng.Float64() * 2)
}
