package physics

import (
	"context"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

// Context provides the simulation context.
type Context interface {
	fx.TimeSource
	Context() context.Context
}

// Motor simulates a motor board receiving commands.
type Motor interface {
	Caps(Context) *msgs.MotorCaps
	SetLimits(Context, *msgs.MotorLimitsSet) error
	SendFrame(Context, *msgs.MotorFrameSend) error
	Status(Context) *msgs.MotorStatus
}
