package dispatch

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Ticker fires a callback once immediately and then at every wall-clock
// minute boundary, matching the evaluator's minute granularity. Wake
// forces an extra run in between, which covers returning to the
// foreground after the process was suspended across one or more
// boundaries. The clock is injectable so tests can drive time.
type Ticker struct {
	clk  clock.Clock
	wake chan struct{}
}

func NewTicker(clk clock.Clock) *Ticker {
	if clk == nil {
		clk = clock.New()
	}
	return &Ticker{clk: clk, wake: make(chan struct{}, 1)}
}

// Wake requests an immediate extra tick. Coalesces: multiple calls before
// the loop services them produce a single run.
func (t *Ticker) Wake() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Run blocks, invoking fn with the current time on each tick, until ctx
// is cancelled. The pending minute timer is stopped on exit.
func (t *Ticker) Run(ctx context.Context, fn func(now time.Time)) {
	fn(t.clk.Now())

	for {
		now := t.clk.Now()
		next := now.Truncate(time.Minute).Add(time.Minute)
		timer := t.clk.Timer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-t.wake:
			timer.Stop()
			fn(t.clk.Now())
		case tick := <-timer.C:
			fn(tick)
		}
	}
}
