// Package motor provides shell commands for motor boards.
package motor

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/motorctl/pkg/cli/sh"
	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l0/link"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

var (
	// CapsQueryCmd exposes MotorCapsQuery command.
	CapsQueryCmd = ishell.Cmd{
		Name:    "motor.caps",
		Aliases: []string{"mcaps"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.MotorCapsQuery{})
		}),
	}

	// LimitsSetCmd exposes MotorLimitsSet command.
	LimitsSetCmd = ishell.Cmd{
		Name:    "motor.limits",
		Aliases: []string{"ml"},
		Help:    "V1(V) V2(V) I1(A) I2(A)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			msg, err := ParseLimits(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, msg)
		}),
	}

	// FrameSendCmd exposes MotorFrameSend command.
	FrameSendCmd = ishell.Cmd{
		Name:    "motor.frame",
		Aliases: []string{"mf"},
		Help:    "B0 .. B7 [--seal]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			msg, err := ParseFrame(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, msg)
		}),
	}

	// StatusQueryCmd exposes MotorStatusQuery command.
	StatusQueryCmd = ishell.Cmd{
		Name:    "motor.status",
		Aliases: []string{"ms"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.MotorStatusQuery{})
		}),
	}
)

// ParseLimits parses V1 V2 I1 I2 in volts and amps.
func ParseLimits(args []string) (*msgs.MotorLimitsSet, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("V1 V2 I1 I2 required")
	}
	var vals [4]float32
	for n, arg := range args {
		val, err := strconv.ParseFloat(arg, 32)
		if err != nil || val < 0 {
			return nil, fmt.Errorf("Invalid limit %q", arg)
		}
		vals[n] = float32(val)
	}
	return &msgs.MotorLimitsSet{
		Volts: []float32{vals[0], vals[1]},
		Amps:  []float32{vals[2], vals[3]},
	}, nil
}

// ParseFrame parses 8 bytes, decimal or 0x hex, and an optional --seal.
func ParseFrame(args []string) (*msgs.MotorFrameSend, error) {
	msg := &msgs.MotorFrameSend{}
	for _, arg := range args {
		if arg == "--seal" {
			msg.Seal = true
			continue
		}
		val, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("Invalid byte %q", arg)
		}
		msg.Frame = append(msg.Frame, byte(val))
	}
	if len(msg.Frame) != link.FrameSize {
		return nil, fmt.Errorf("%d bytes required", link.FrameSize)
	}
	return msg, nil
}

// FormatStatus renders MotorStatus in engineering units.
func FormatStatus(msg fx.Message) (string, bool) {
	var s *msgs.MotorStatus
	switch m := msg.(type) {
	case *msgs.MotorStatus:
		s = m
	case *msgs.MotorStatusEvent:
		s = m.Status()
	default:
		return "", false
	}
	if len(s.Volts) < 2 || len(s.Amps) < 2 || len(s.Duty) < 2 || len(s.Setpoint) < link.FrameSize {
		return "", false
	}
	return fmt.Sprintf("CH1 %.1fV %.2fA duty %d/%d | CH2 %.1fV %.2fA duty %d/%d | limits % x | frames %d dropped %d",
		s.Volts[0], s.Amps[0], s.Duty[0], s.Period,
		s.Volts[1], s.Amps[1], s.Duty[1], s.Period,
		s.Setpoint[:4], s.Frames, s.Dropped), true
}

func init() {
	sh.AddCmds(
		&CapsQueryCmd,
		&LimitsSetCmd,
		&FrameSendCmd,
		&StatusQueryCmd,
	)
	sh.AddFormatters(FormatStatus)
}
