package board

import (
	"errors"
	"sync/atomic"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// ErrZeroPeriod is returned when configuring a timer with period 0.
var ErrZeroPeriod = errors.New("zero timer period")

// Timer is a simulated PWM timer.
type Timer struct {
	board *Board
	index int

	// guarded by board.lock
	conf       hal.PWMConfig
	started    bool
	startCycle uint64

	period atomic.Uint32
	duty   dutyRegister
}

// Configure implements hal.PWMTimer.
func (t *Timer) Configure(conf hal.PWMConfig) error {
	if conf.Period == 0 {
		return ErrZeroPeriod
	}
	t.board.lock.Lock()
	t.conf = conf
	t.board.lock.Unlock()
	t.period.Store(uint32(conf.Period))
	return nil
}

// Compare implements hal.PWMTimer.
func (t *Timer) Compare() hal.DutyRegister {
	return &t.duty
}

// Start implements hal.PWMTimer.
func (t *Timer) Start() {
	t.board.lock.Lock()
	t.started = true
	t.startCycle = t.board.cycle
	t.board.lock.Unlock()
}

// Period returns the configured period.
func (t *Timer) Period() uint16 {
	return uint16(t.period.Load())
}

// Duty returns the compare value.
func (t *Timer) Duty() uint16 {
	return hal.Duty(&t.duty)
}

// DutyCycle returns the fraction of the period the output is driven,
// clamped to [0, 1].
func (t *Timer) DutyCycle() float64 {
	period := t.Period()
	if period == 0 {
		return 0
	}
	d := float64(t.Duty()) / float64(period)
	if d > 1 {
		d = 1
	}
	return d
}

func (t *Timer) ticking() bool {
	return t.started && t.conf.OverflowInterrupt
}

// nextOverflowLocked returns the first overflow strictly after cycle.
func (t *Timer) nextOverflowLocked(cycle uint64) (uint64, bool) {
	if !t.ticking() {
		return 0, false
	}
	period := uint64(t.conf.Period)
	if cycle < t.startCycle {
		return t.startCycle + period, true
	}
	n := (cycle-t.startCycle)/period + 1
	return t.startCycle + n*period, true
}

// phaseLocked returns the first cycle at or after cycle that lies
// half a period past an overflow.
func (t *Timer) phaseLocked(cycle uint64) uint64 {
	period := uint64(t.conf.Period)
	base := t.startCycle + period/2
	if cycle <= base {
		return base
	}
	n := (cycle - base + period - 1) / period
	return base + n*period
}

type dutyRegister struct {
	v atomic.Uint32
}

func (r *dutyRegister) Bytes() (hi, lo byte) {
	v := r.v.Load()
	return byte(v >> 8), byte(v)
}

func (r *dutyRegister) SetBytes(hi, lo byte) {
	r.v.Store(uint32(hi)<<8 | uint32(lo))
}
