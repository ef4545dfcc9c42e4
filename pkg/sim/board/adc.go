package board

import (
	"time"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// ADC is a simulated single-shot converter.
type ADC struct {
	board *Board

	// guarded by board.lock
	source   AnalogSource
	powered  bool
	selected hal.ADCChannel
	busy     bool
	channel  hal.ADCChannel
	doneAt   uint64
	result   byte
	drop     int
	started  uint64
	dropped  uint64
}

// SetSource installs the analog source. Without one, conversions read 0.
func (a *ADC) SetSource(src AnalogSource) {
	a.board.lock.Lock()
	a.source = src
	a.board.lock.Unlock()
}

// DropConversions makes the next n conversions finish without raising
// the completion interrupt, stalling a sampler that waits for it.
func (a *ADC) DropConversions(n int) {
	a.board.lock.Lock()
	a.drop += n
	a.board.lock.Unlock()
}

// Counters returns the number of started and dropped conversions.
func (a *ADC) Counters() (started, dropped uint64) {
	a.board.lock.Lock()
	defer a.board.lock.Unlock()
	return a.started, a.dropped
}

// PowerUp implements hal.ADC.
func (a *ADC) PowerUp() {
	a.board.lock.Lock()
	a.powered = true
	a.board.lock.Unlock()
}

// Select implements hal.ADC.
func (a *ADC) Select(ch hal.ADCChannel) {
	a.board.lock.Lock()
	a.selected = ch
	a.board.lock.Unlock()
}

// Start implements hal.ADC. Starting while busy restarts the conversion.
func (a *ADC) Start() {
	a.board.lock.Lock()
	defer a.board.lock.Unlock()
	if !a.powered {
		return
	}
	a.busy = true
	a.channel = a.selected
	a.doneAt = a.board.cycle + a.board.conversionCycles
	a.started++
}

// Result implements hal.ADC.
func (a *ADC) Result() byte {
	a.board.lock.Lock()
	defer a.board.lock.Unlock()
	return a.result
}

func (a *ADC) nextLocked() (uint64, bool) {
	return a.doneAt, a.busy
}

func (a *ADC) dueLocked(at uint64) (hal.ADCChannel, bool) {
	if !a.busy || a.doneAt != at {
		return 0, false
	}
	a.busy = false
	return a.channel, true
}

func (a *ADC) complete(ch hal.ADCChannel, at time.Time) {
	a.board.lock.Lock()
	src := a.source
	a.board.lock.Unlock()
	var v byte
	if src != nil {
		v = src.Convert(ch, at)
	}
	a.board.lock.Lock()
	a.result = v
	raise := a.drop == 0
	if !raise {
		a.drop--
		a.dropped++
	}
	a.board.lock.Unlock()
	if raise {
		a.board.raise(hal.IRQConversion)
	}
}
