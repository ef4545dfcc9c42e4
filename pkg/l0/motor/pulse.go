package motor

import (
	"sync/atomic"

	"github.com/robotalks/motorctl/pkg/l0/link"
)

// PulseCounter counts reference ticks since the last protocol edge.
// It saturates at link.IdleTicks.
type PulseCounter struct {
	v atomic.Uint32
}

// Arm forces the counter to the idle value so the first edge resyncs.
func (p *PulseCounter) Arm() {
	p.v.Store(uint32(link.IdleTicks))
}

// Tick advances the counter by one unless saturated.
func (p *PulseCounter) Tick() {
	for {
		old := p.v.Load()
		if old >= uint32(link.IdleTicks) {
			return
		}
		if p.v.CompareAndSwap(old, old+1) {
			return
		}
	}
}

// Take returns the count and resets it to zero.
func (p *PulseCounter) Take() byte {
	return byte(p.v.Swap(0))
}

// Value returns the current count.
func (p *PulseCounter) Value() byte {
	return byte(p.v.Load())
}
