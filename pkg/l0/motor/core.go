package motor

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

// Status is a point-in-time view of the regulator.
type Status struct {
	Samples     [NumSamples]byte
	Setpoint    link.Frame
	Duty        [NumChannels]uint16
	Period      uint16
	Decoder     link.Stats
	Conversions uint32
	Stalls      uint32
}

// Core owns the regulator state shared between the interrupt handlers
// and the control loop.
type Core struct {
	Config *Config
	Board  hal.Board

	Samples    SampleSet
	Pulse      PulseCounter
	Setpoint   *Setpoint
	Sampler    *Sampler
	Controller *Controller

	// decoder is owned by the edge handler.
	decoder link.Decoder

	period       uint16
	watchedCount uint32
	watchedAt    time.Time
	stalls       atomic.Uint32
}

// New creates a Core. Init must be called before use.
func New(conf *Config, board hal.Board) *Core {
	return &Core{Config: conf, Board: board}
}

// Init configures the peripherals, attaches the interrupt handlers,
// starts sampling and enables interrupts.
func (c *Core) Init() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	period, err := Configure(c.Board, c.Config)
	if err != nil {
		return err
	}
	c.period = period
	irq := c.Board.Interrupts()
	c.Setpoint = NewSetpoint(c.Config.SetpointPolicy, irq, c.Config.InitialSetpoint())
	c.Sampler = NewSampler(c.Board.ADC(), c.Config.ADCChannels(), &c.Samples)
	c.Controller = &Controller{
		Period:            period,
		HysteresisVoltage: c.Config.HysteresisVoltage,
		HysteresisCurrent: c.Config.HysteresisCurrent,
		Samples:           &c.Samples,
		Setpoint:          c.Setpoint,
	}
	for n := 0; n < NumChannels; n++ {
		c.Controller.Channels[n] = Channel{
			Duty:          c.Board.PWM(n).Compare(),
			VoltageSample: SampleVoltage1 + n,
			CurrentSample: SampleCurrent1 + n,
		}
	}
	irq.Attach(hal.IRQTimerTick, c.Pulse.Tick)
	irq.Attach(hal.IRQConversion, c.Sampler.HandleConversion)
	irq.Attach(hal.IRQEdge, c.handleEdge)
	c.Sampler.Start()
	c.Pulse.Arm()
	irq.Enable()
	glog.Infof("motor: period %d at %d Hz, policy %s, channels %v",
		period, c.Config.PWMFrequency, c.Config.SetpointPolicy, c.Config.Channels)
	return nil
}

// Period returns the programmed timer period.
func (c *Core) Period() uint16 {
	return c.period
}

func (c *Core) handleEdge() {
	r := c.decoder.Edge(c.Pulse.Take())
	switch r.State {
	case link.StateFrameComplete:
		c.Setpoint.Publish(*r.Frame)
		if glog.V(3) {
			glog.Infof("motor: setpoint %v", *r.Frame)
		}
	case link.StateFrameDropped:
		if glog.V(3) {
			glog.Infof("motor: frame dropped")
		}
	}
}

// Iterate runs one control iteration at the given time.
func (c *Core) Iterate(now time.Time) [NumChannels]Action {
	c.watchSampler(now)
	return c.Controller.Step()
}

// Control implements framework.Controller. Only ticks step the
// regulator, at most one count per ControlPeriod; iterations woken up
// for L1 traffic leave the duty alone.
func (c *Core) Control(cc fx.ControlContext) error {
	if cc.WokenUp() {
		return nil
	}
	c.Iterate(cc.Time())
	return nil
}

// AddToLoop implements framework.LoopAdder.
func (c *Core) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvControl, c)
}

func (c *Core) watchSampler(now time.Time) {
	timeout := c.Config.SampleTimeout
	if timeout <= 0 {
		return
	}
	count := c.Sampler.Conversions()
	if count != c.watchedCount || c.watchedAt.IsZero() {
		c.watchedCount, c.watchedAt = count, now
		return
	}
	if now.Sub(c.watchedAt) < timeout {
		return
	}
	c.stalls.Add(1)
	glog.Warningf("motor: no conversion for %v, re-arming sampler", now.Sub(c.watchedAt))
	hal.Masked(c.Board.Interrupts(), c.Sampler.Rearm)
	c.watchedAt = now
}

// Status returns a snapshot of the regulator.
func (c *Core) Status() Status {
	s := Status{
		Samples:     c.Samples.Snapshot(),
		Setpoint:    c.Setpoint.Load(),
		Period:      c.period,
		Conversions: c.Sampler.Conversions(),
		Stalls:      c.stalls.Load(),
		Decoder:     c.decoder.Stats(),
	}
	for n := range c.Controller.Channels {
		s.Duty[n] = hal.Duty(c.Controller.Channels[n].Duty)
	}
	return s
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return fmt.Sprintf("V=%d/%d I=%d/%d limits V=%d/%d I=%d/%d duty=%d/%d of %d",
		s.Samples[SampleVoltage1], s.Samples[SampleVoltage2],
		s.Samples[SampleCurrent1], s.Samples[SampleCurrent2],
		s.Setpoint.VoltageLimit(0), s.Setpoint.VoltageLimit(1),
		s.Setpoint.CurrentLimit(0), s.Setpoint.CurrentLimit(1),
		s.Duty[0], s.Duty[1], s.Period)
}
