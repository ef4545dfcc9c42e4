package board

import (
	"context"
	"time"
)

// Clock advances the board in fixed steps and delivers the virtual
// time of each step on Ticks, for use as framework.Loop.Ticks.
type Clock struct {
	Board    *Board
	Interval time.Duration
	// RealTime paces steps with the wall clock. Otherwise steps run as
	// fast as Ticks is consumed.
	RealTime bool

	ticks chan time.Time
}

// NewClock creates a Clock.
func NewClock(b *Board, interval time.Duration, realTime bool) *Clock {
	return &Clock{
		Board:    b,
		Interval: interval,
		RealTime: realTime,
		ticks:    make(chan time.Time),
	}
}

// Ticks returns the channel of step times.
func (c *Clock) Ticks() <-chan time.Time {
	return c.ticks
}

// Run implements framework.Runnable.
func (c *Clock) Run(ctx context.Context) error {
	var pace <-chan time.Time
	if c.RealTime {
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()
		pace = ticker.C
	}
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		}
		now := c.Board.Step(c.Interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c.ticks <- now:
		}
	}
}
