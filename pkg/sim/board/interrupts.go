package board

import (
	"sync"
	"sync/atomic"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// interrupts serializes handlers against masked sections with a
// single mutex. Masked sections do not nest.
type interrupts struct {
	board *Board

	mask     sync.Mutex
	enabled  atomic.Bool
	handlers [hal.NumIRQs]atomic.Pointer[hal.Handler]
}

func (q *interrupts) Attach(irq hal.IRQ, h hal.Handler) {
	q.handlers[irq].Store(&h)
}

func (q *interrupts) Enable() {
	q.enabled.Store(true)
}

func (q *interrupts) Disable() hal.InterruptState {
	q.mask.Lock()
	return 1
}

func (q *interrupts) Restore(hal.InterruptState) {
	q.mask.Unlock()
}

func (q *interrupts) isEnabled() bool {
	return q.enabled.Load()
}

func (q *interrupts) run(irq hal.IRQ) {
	h := q.handlers[irq].Load()
	if h == nil || *h == nil {
		return
	}
	q.mask.Lock()
	defer q.mask.Unlock()
	(*h)()
}
