package motor

import (
	"flag"
	"time"

	core "github.com/robotalks/motorctl/pkg/l0/motor"
	env "github.com/robotalks/motorctl/pkg/l1/env/controller"
	"github.com/robotalks/motorctl/pkg/sim/board"
	"github.com/robotalks/motorctl/pkg/sim/physics"
	engine "github.com/robotalks/motorctl/pkg/sim/physics/motor"
)

// Config defines the configuration for the bench.
type Config struct {
	Motor *core.Config
	Plant physics.PlantConfig
	// TelemetryInterval is the virtual time between status events.
	TelemetryInterval time.Duration
	// RealTime paces the virtual clock with the wall clock.
	RealTime bool
}

// Defaults
const (
	DefaultTelemetryInterval = 500 * time.Millisecond
)

var defaultConfig = Config{
	TelemetryInterval: DefaultTelemetryInterval,
	RealTime:          true,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.TelemetryInterval, "telemetry-interval", defaultConfig.TelemetryInterval, "Interval of status events, 0 disables.")
	flag.BoolVar(&defaultConfig.RealTime, "realtime", defaultConfig.RealTime, "Pace the simulation with the wall clock.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	conf.Motor = core.NewConfig()
	conf.Plant = *physics.NewPlantConfig()
	return &conf
}

// NewController creates the Controller on a fresh simulated board.
func (c *Config) NewController(e *env.Env) (*Controller, error) {
	b := board.New(board.Config{SystemClock: c.Motor.SystemClock, Epoch: time.Now()})
	ctl := &Controller{
		Board:             b,
		Core:              core.New(c.Motor, b),
		TelemetryInterval: c.TelemetryInterval,
	}
	if e != nil {
		ctl.Registrar = e.Registrar
		ctl.name = e.Config.Info.Ref.Name()
	}
	ctl.Plant = physics.NewPlant(ctl.name, c.Plant,
		[core.NumChannels]physics.DutySource{b.Timer(0), b.Timer(1)},
		c.Motor.ADCChannels())
	b.Analog().SetSource(ctl.Plant)
	if err := ctl.Core.Init(); err != nil {
		return nil, err
	}
	ctl.Engine = engine.New(ctl.Core, b.Edges())
	ctl.Clock = board.NewClock(b, c.Motor.ControlPeriod, c.RealTime)
	return ctl, nil
}
