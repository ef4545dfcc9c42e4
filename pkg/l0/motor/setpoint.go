package motor

import (
	"sync/atomic"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

// Setpoint is the frame currently commanding the limits.
// Publish is called from the edge handler, Load from the control loop.
type Setpoint struct {
	policy SetpointPolicy
	irq    hal.Interrupts

	bytes [link.FrameSize]atomic.Uint32
	frame atomic.Pointer[link.Frame]
}

// NewSetpoint creates a Setpoint holding initial.
func NewSetpoint(policy SetpointPolicy, irq hal.Interrupts, initial link.Frame) *Setpoint {
	s := &Setpoint{policy: policy, irq: irq}
	s.Publish(initial)
	return s
}

// Policy returns the publication policy.
func (s *Setpoint) Policy() SetpointPolicy {
	return s.policy
}

// Publish makes a validated frame visible. It must run in interrupt
// context (or before interrupts are enabled) because the masked policy
// relies on the caller already excluding the control loop's reads.
func (s *Setpoint) Publish(f link.Frame) {
	if s.policy == PolicySwap {
		s.frame.Store(&f)
		return
	}
	for n, b := range f {
		s.bytes[n].Store(uint32(b))
	}
}

// Load returns the setpoint for one control iteration.
func (s *Setpoint) Load() (f link.Frame) {
	switch s.policy {
	case PolicySwap:
		return *s.frame.Load()
	case PolicyMasked:
		hal.Masked(s.irq, func() { f = s.copyBytes() })
		return
	}
	return s.copyBytes()
}

func (s *Setpoint) copyBytes() (f link.Frame) {
	for n := range f {
		f[n] = byte(s.bytes[n].Load())
	}
	return
}
