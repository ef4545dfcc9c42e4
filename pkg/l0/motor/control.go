package motor

import (
	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

// Action is the adjustment of a duty register in one iteration.
type Action int

// Actions
const (
	Hold Action = iota
	Increase
	Decrease
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case Increase:
		return "inc"
	case Decrease:
		return "dec"
	}
	return "hold"
}

// Regulate decides the adjustment of one channel from its voltage and
// current samples and limits. Exceeding either limit wins over the
// deadband check.
func Regulate(v, i, vLimit, iLimit byte, hystV, hystI int) Action {
	if i > iLimit || v > vLimit {
		return Decrease
	}
	if int(i)+hystI < int(iLimit) && int(v)+hystV < int(vLimit) {
		return Increase
	}
	return Hold
}

// decDuty decrements the register by one count, stopping at 0.
func decDuty(r hal.DutyRegister) bool {
	hi, lo := r.Bytes()
	if lo == 0 {
		if hi == 0 {
			return false
		}
		hi--
	}
	lo--
	r.SetBytes(hi, lo)
	return true
}

// incDuty increments the register by one count, stopping at period.
func incDuty(r hal.DutyRegister, period uint16) bool {
	hi, lo := r.Bytes()
	if uint16(hi)<<8|uint16(lo) >= period {
		return false
	}
	lo++
	if lo == 0 {
		hi++
	}
	r.SetBytes(hi, lo)
	return true
}

// Channel binds one motor channel to its duty register and samples.
type Channel struct {
	Duty          hal.DutyRegister
	VoltageSample int
	CurrentSample int
}

// Controller is the per-iteration regulator of all channels.
type Controller struct {
	Period            uint16
	HysteresisVoltage int
	HysteresisCurrent int
	Samples           *SampleSet
	Setpoint          *Setpoint
	Channels          [NumChannels]Channel
}

// Step runs one regulation pass over all channels and returns the
// decision per channel. A decision at a clamp leaves the register unchanged.
func (c *Controller) Step() (actions [NumChannels]Action) {
	frame := c.Setpoint.Load()
	for n := range c.Channels {
		actions[n] = c.step(n, frame)
	}
	return
}

func (c *Controller) step(n int, frame link.Frame) Action {
	ch := &c.Channels[n]
	act := Regulate(
		c.Samples.Load(ch.VoltageSample), c.Samples.Load(ch.CurrentSample),
		frame.VoltageLimit(n), frame.CurrentLimit(n),
		c.HysteresisVoltage, c.HysteresisCurrent)
	switch act {
	case Decrease:
		decDuty(ch.Duty)
	case Increase:
		incDuty(ch.Duty, c.Period)
	}
	return act
}
