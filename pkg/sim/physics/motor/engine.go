// Package motor executes motor board commands against a simulated core.
package motor

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l0/link"
	core "github.com/robotalks/motorctl/pkg/l0/motor"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
	"github.com/robotalks/motorctl/pkg/sim/physics"
)

// Transmitter sends a frame on the command line.
type Transmitter interface {
	SendFrame(f link.Frame, t link.Timing) (uint64, error)
}

// Errors
var (
	ErrLimitsArity = fmt.Errorf("limits require %d volts and %d amps", core.NumChannels, core.NumChannels)
	ErrFrameSize   = fmt.Errorf("frame must be %d bytes", link.FrameSize)
	ErrNotReady    = errors.New("core not initialized")
)

// Engine implements physics.Motor
type Engine struct {
	Core   *core.Core
	Wire   Transmitter
	Timing link.Timing
}

// New creates the engine.
func New(c *core.Core, wire Transmitter) *Engine {
	return &Engine{Core: c, Wire: wire, Timing: link.DefaultTiming}
}

// Caps executes MotorCapsQuery command.
func (e *Engine) Caps(ctx physics.Context) *msgs.MotorCaps {
	conf := e.Core.Config
	return &msgs.MotorCaps{
		Channels:          core.NumChannels,
		SystemClock:       conf.SystemClock,
		PwmFrequency:      conf.PWMFrequency,
		Period:            uint32(e.Core.Period()),
		HysteresisVoltage: uint32(conf.HysteresisVoltage),
		HysteresisCurrent: uint32(conf.HysteresisCurrent),
		VoltsPerCount:     core.VoltsPerCount,
		AmpsPerCount:      core.AmpsPerCount,
		SetpointPolicy:    string(conf.SetpointPolicy),
	}
}

// SetLimits executes MotorLimitsSet command by transmitting a sealed
// frame.
func (e *Engine) SetLimits(ctx physics.Context, msg *msgs.MotorLimitsSet) error {
	if len(msg.Volts) != core.NumChannels || len(msg.Amps) != core.NumChannels {
		return ErrLimitsArity
	}
	f := link.NewLimitsFrame(
		core.VoltageCounts(float64(msg.Volts[0])),
		core.VoltageCounts(float64(msg.Volts[1])),
		core.CurrentCounts(float64(msg.Amps[0])),
		core.CurrentCounts(float64(msg.Amps[1])))
	return e.transmit(f)
}

// SendFrame executes MotorFrameSend command. The frame goes out as is
// unless sealing is requested.
func (e *Engine) SendFrame(ctx physics.Context, msg *msgs.MotorFrameSend) error {
	if len(msg.Frame) != link.FrameSize {
		return ErrFrameSize
	}
	var f link.Frame
	copy(f[:], msg.Frame)
	if msg.Seal {
		f.Seal()
	}
	return e.transmit(f)
}

// Status executes MotorStatusQuery command.
func (e *Engine) Status(ctx physics.Context) *msgs.MotorStatus {
	return StatusMsg(e.Core.Status())
}

func (e *Engine) transmit(f link.Frame) error {
	if e.Core.Controller == nil {
		return ErrNotReady
	}
	at, err := e.Wire.SendFrame(f, e.Timing)
	if err != nil {
		return err
	}
	glog.V(2).Infof("transmit frame % x, last edge at cycle %d", f[:], at)
	return nil
}

// StatusMsg converts a core status into the L1 message.
func StatusMsg(s core.Status) *msgs.MotorStatus {
	m := &msgs.MotorStatus{
		Samples:     make([]uint32, len(s.Samples)),
		Setpoint:    append([]byte(nil), s.Setpoint[:]...),
		Duty:        make([]uint32, len(s.Duty)),
		Period:      uint32(s.Period),
		Edges:       s.Decoder.Edges,
		Resyncs:     s.Decoder.Resyncs,
		Frames:      s.Decoder.Frames,
		Dropped:     s.Decoder.Dropped,
		Conversions: s.Conversions,
		Stalls:      s.Stalls,
		Volts:       make([]float32, core.NumChannels),
		Amps:        make([]float32, core.NumChannels),
	}
	for n, v := range s.Samples {
		m.Samples[n] = uint32(v)
	}
	for n, d := range s.Duty {
		m.Duty[n] = uint32(d)
	}
	for n := 0; n < core.NumChannels; n++ {
		m.Volts[n] = float32(core.Volts(s.Samples[core.SampleVoltage1+n]))
		m.Amps[n] = float32(core.Amps(s.Samples[core.SampleCurrent1+n]))
	}
	return m
}

// AddToLoop implements LoopAdder.
func (e *Engine) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvControl, fx.ControlFunc(e.HandleCommand))
}

// HandleCommand is a controller processing commands.
func (e *Engine) HandleCommand(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		var reply fx.Message
		switch m := cmdMsg.Command.Msg().(type) {
		case *msgs.MotorCapsQuery:
			reply = e.Caps(cc)
		case *msgs.MotorLimitsSet:
			reply = okOrErr(e.SetLimits(cc, m))
		case *msgs.MotorFrameSend:
			reply = okOrErr(e.SendFrame(cc, m))
		case *msgs.MotorStatusQuery:
			reply = e.Status(cc)
		default:
			return
		}
		mctx.MessageTaken()
		if err := cmdMsg.Command.Done(reply); err != nil {
			glog.Errorf("reply command: %v", err)
		}
	}))
	return nil
}

func okOrErr(err error) fx.Message {
	if err != nil {
		return msgs.NewCommandErr(err)
	}
	return msgs.NewCommandOK()
}
