// Package motor is the simulated motor board: a core on a virtual
// board driving a plant, reachable through L1 registrars.
package motor

import (
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	core "github.com/robotalks/motorctl/pkg/l0/motor"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
	"github.com/robotalks/motorctl/pkg/sim"
	"github.com/robotalks/motorctl/pkg/sim/board"
	"github.com/robotalks/motorctl/pkg/sim/physics"
	engine "github.com/robotalks/motorctl/pkg/sim/physics/motor"
)

// Controller is the L1 controller.
type Controller struct {
	Registrar l1.Registrar

	Board  *board.Board
	Core   *core.Core
	Plant  *physics.Plant
	Engine *engine.Engine
	Clock  *board.Clock

	TelemetryInterval time.Duration

	sim.ReadingsCaster

	name          string
	lastTelemetry time.Time
}

// Name implements Named.
func (c *Controller) Name() string {
	return c.name
}

// AddToLoop implements LoopAdder. The loop is driven by the board's
// virtual clock.
func (c *Controller) AddToLoop(l *fx.Loop) {
	l.Ticks = c.Clock.Ticks()
	l.AddRunnable(c.Clock)
	l.Add(c.Core, c.Engine)
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(c.Publish))
}

// Publish sends telemetry and notifies readings.
func (c *Controller) Publish(cc fx.ControlContext) error {
	c.ReadingsChanged(cc, c.Plant)
	if c.TelemetryInterval <= 0 || c.Registrar == nil {
		return nil
	}
	now := cc.Time()
	if !c.lastTelemetry.IsZero() && now.Sub(c.lastTelemetry) < c.TelemetryInterval {
		return nil
	}
	c.lastTelemetry = now
	ev := (*msgs.MotorStatusEvent)(engine.StatusMsg(c.Core.Status()))
	if err := c.Registrar.SendEvent(cc.Context(), ev); err != nil {
		glog.Warningf("%s: send status: %v", c.name, err)
	}
	return nil
}
