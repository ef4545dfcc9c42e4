// Package board simulates the controller peripherals in virtual CPU
// cycles. Time only advances through Advance, so runs are reproducible.
package board

import (
	"sync"
	"time"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// DefaultConversionCycles is a conversion of 14 ADC clocks at Fmaster/18.
const DefaultConversionCycles = 14 * 18

// NumTimers is the number of PWM timers on the board.
const NumTimers = 2

// AnalogSource produces conversion results.
// It is called without any board lock held.
type AnalogSource interface {
	Convert(ch hal.ADCChannel, at time.Time) byte
}

// AnalogFunc is the func form of AnalogSource.
type AnalogFunc func(ch hal.ADCChannel, at time.Time) byte

// Convert implements AnalogSource.
func (f AnalogFunc) Convert(ch hal.ADCChannel, at time.Time) byte {
	return f(ch, at)
}

// Config defines the board parameters.
type Config struct {
	SystemClock      uint32
	ConversionCycles uint64
	// Epoch is the time of cycle 0.
	Epoch time.Time
}

// Board is a simulated hal.Board.
type Board struct {
	clock            uint32
	conversionCycles uint64
	epoch            time.Time

	timers [NumTimers]*Timer
	adc    *ADC
	edge   *EdgeInput
	irq    *interrupts

	// lock protects the event state below and is never held while
	// a handler runs.
	lock    sync.Mutex
	cycle   uint64
	pending [hal.NumIRQs]bool
}

// New creates a Board.
func New(conf Config) *Board {
	if conf.SystemClock == 0 {
		conf.SystemClock = 16000000
	}
	if conf.ConversionCycles == 0 {
		conf.ConversionCycles = DefaultConversionCycles
	}
	b := &Board{
		clock:            conf.SystemClock,
		conversionCycles: conf.ConversionCycles,
		epoch:            conf.Epoch,
	}
	for n := range b.timers {
		b.timers[n] = &Timer{board: b, index: n}
	}
	b.adc = &ADC{board: b}
	b.edge = &EdgeInput{board: b}
	b.irq = &interrupts{board: b}
	return b
}

// SystemClock implements hal.Board.
func (b *Board) SystemClock() uint32 {
	return b.clock
}

// PWM implements hal.Board.
func (b *Board) PWM(n int) hal.PWMTimer {
	if n < 0 || n >= NumTimers {
		return nil
	}
	return b.timers[n]
}

// ADC implements hal.Board.
func (b *Board) ADC() hal.ADC {
	return b.adc
}

// EdgeInput implements hal.Board.
func (b *Board) EdgeInput() hal.EdgeInput {
	return b.edge
}

// Interrupts implements hal.Board.
func (b *Board) Interrupts() hal.Interrupts {
	return b.irq
}

// Timer returns a PWM timer.
func (b *Board) Timer(n int) *Timer {
	return b.timers[n]
}

// Analog returns the converter for installing a source or injecting faults.
func (b *Board) Analog() *ADC {
	return b.adc
}

// Edges returns the protocol input.
func (b *Board) Edges() *EdgeInput {
	return b.edge
}

// Cycle returns the current cycle.
func (b *Board) Cycle() uint64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.cycle
}

// Now returns the virtual time.
func (b *Board) Now() time.Time {
	return b.TimeAt(b.Cycle())
}

// TimeAt converts a cycle count to virtual time.
func (b *Board) TimeAt(cycle uint64) time.Time {
	clock := uint64(b.clock)
	secs, rem := cycle/clock, cycle%clock
	return b.epoch.Add(time.Duration(secs)*time.Second +
		time.Duration(rem*uint64(time.Second)/clock))
}

// Cycles converts a duration to cycles.
func (b *Board) Cycles(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	clock := uint64(b.clock)
	secs, rem := uint64(d/time.Second), uint64(d%time.Second)
	return secs*clock + rem*clock/uint64(time.Second)
}

// Step advances by a duration and returns the new virtual time.
func (b *Board) Step(d time.Duration) time.Time {
	b.Advance(b.Cycles(d))
	return b.Now()
}

// AdvanceTo advances until the given cycle.
func (b *Board) AdvanceTo(cycle uint64) {
	if now := b.Cycle(); cycle > now {
		b.Advance(cycle - now)
	}
}

// Advance runs the peripherals for the given number of cycles,
// dispatching interrupts as they fall due. Events on the same cycle
// are dispatched in priority order: edge, tick, conversion.
func (b *Board) Advance(cycles uint64) {
	b.lock.Lock()
	target := b.cycle + cycles
	b.lock.Unlock()
	for {
		b.dispatch()
		b.lock.Lock()
		at, ok := b.nextEventLocked(target)
		if !ok {
			b.cycle = target
			b.lock.Unlock()
			return
		}
		b.cycle = at
		if b.edge.dueLocked(at) {
			b.edge.fireLocked()
		}
		if b.tickDueLocked(at) {
			b.pending[hal.IRQTimerTick] = true
		}
		conv, convDue := b.adc.dueLocked(at)
		b.lock.Unlock()
		if convDue {
			b.adc.complete(conv, b.TimeAt(at))
		}
	}
}

func (b *Board) nextEventLocked(target uint64) (uint64, bool) {
	next, ok := target, false
	consider := func(at uint64, valid bool) {
		if valid && at <= next {
			next, ok = at, true
		}
	}
	consider(b.edge.nextLocked())
	for _, t := range b.timers {
		consider(t.nextOverflowLocked(b.cycle))
	}
	consider(b.adc.nextLocked())
	return next, ok
}

func (b *Board) tickDueLocked(at uint64) bool {
	if at == 0 {
		return false
	}
	for _, t := range b.timers {
		if next, ok := t.nextOverflowLocked(at - 1); ok && next == at {
			return true
		}
	}
	return false
}

// dispatch runs pending handlers in priority order.
func (b *Board) dispatch() {
	for irq := hal.IRQ(0); irq < hal.NumIRQs; irq++ {
		b.lock.Lock()
		fire := b.pending[irq] && b.irq.isEnabled()
		if fire {
			b.pending[irq] = false
		}
		b.lock.Unlock()
		if fire {
			b.irq.run(irq)
		}
	}
}

func (b *Board) raise(irq hal.IRQ) {
	b.lock.Lock()
	b.pending[irq] = true
	b.lock.Unlock()
}
