package board

import (
	"errors"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

// ErrNoTickTimer is returned when transmitting before a timer with the
// overflow interrupt is running.
var ErrNoTickTimer = errors.New("no tick timer running")

// EdgeInput is the simulated protocol input pin, driven by a queue of
// scheduled transitions.
type EdgeInput struct {
	board *Board

	// guarded by board.lock
	sense hal.EdgeSense
	level bool
	queue []uint64
}

// Sense implements hal.EdgeInput.
func (e *EdgeInput) Sense(s hal.EdgeSense) {
	e.board.lock.Lock()
	e.sense = s
	e.board.lock.Unlock()
}

// Level implements hal.EdgeInput.
func (e *EdgeInput) Level() bool {
	e.board.lock.Lock()
	defer e.board.lock.Unlock()
	return e.level
}

// Transmit schedules transitions separated by the given numbers of
// tick periods, after any transmission already queued. Every edge
// falls half a period between two overflows so an interval of k
// periods is measured as exactly k ticks. It returns the cycle of the
// last edge.
func (e *EdgeInput) Transmit(intervals []uint16) (uint64, error) {
	b := e.board
	b.lock.Lock()
	defer b.lock.Unlock()
	var timer *Timer
	for _, t := range b.timers {
		if t.ticking() {
			timer = t
			break
		}
	}
	if timer == nil {
		return 0, ErrNoTickTimer
	}
	period := uint64(timer.conf.Period)
	at := timer.phaseLocked(b.cycle)
	if n := len(e.queue); n > 0 && e.queue[n-1] > at {
		at = e.queue[n-1]
	}
	for _, iv := range intervals {
		at += uint64(iv) * period
		e.queue = append(e.queue, at)
	}
	return at, nil
}

// SendFrame encodes and transmits a frame.
func (e *EdgeInput) SendFrame(f link.Frame, timing link.Timing) (uint64, error) {
	if err := timing.Validate(); err != nil {
		return 0, err
	}
	return e.Transmit(link.Encode(f, timing))
}

// Queued returns the number of transitions not yet emitted.
func (e *EdgeInput) Queued() int {
	e.board.lock.Lock()
	defer e.board.lock.Unlock()
	return len(e.queue)
}

func (e *EdgeInput) nextLocked() (uint64, bool) {
	if len(e.queue) == 0 {
		return 0, false
	}
	return e.queue[0], true
}

func (e *EdgeInput) dueLocked(at uint64) bool {
	return len(e.queue) > 0 && e.queue[0] == at
}

func (e *EdgeInput) fireLocked() {
	e.queue = e.queue[1:]
	e.level = !e.level
	switch e.sense {
	case hal.EdgeBoth:
	case hal.EdgeRising:
		if !e.level {
			return
		}
	case hal.EdgeFalling:
		if e.level {
			return
		}
	default:
		return
	}
	e.board.pending[hal.IRQEdge] = true
}
