package physics

import (
	"flag"
	"math"
	"sync"
	"time"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/motor"
	"github.com/robotalks/motorctl/pkg/sim"
)

// PlantConfig describes the electrical load behind both drivers.
type PlantConfig struct {
	// SupplyVolts is the output at 100% duty.
	SupplyVolts float64
	// LoadOhms is the resistive load on each output.
	LoadOhms float64
	// TimeConstant is the output filter lag.
	TimeConstant time.Duration
}

// Plant defaults
const (
	DefaultSupplyVolts  = 300
	DefaultLoadOhms     = 100
	DefaultTimeConstant = 2 * time.Millisecond
)

var defaultPlantConfig = PlantConfig{
	SupplyVolts:  DefaultSupplyVolts,
	LoadOhms:     DefaultLoadOhms,
	TimeConstant: DefaultTimeConstant,
}

// SetupPlantFlags sets command line flags.
func SetupPlantFlags() {
	flag.Float64Var(&defaultPlantConfig.SupplyVolts, "plant-supply", defaultPlantConfig.SupplyVolts, "Driver output (V) at full duty")
	flag.Float64Var(&defaultPlantConfig.LoadOhms, "plant-load", defaultPlantConfig.LoadOhms, "Load resistance (ohm) on each output")
	flag.DurationVar(&defaultPlantConfig.TimeConstant, "plant-lag", defaultPlantConfig.TimeConstant, "Output filter time constant")
}

// DefaultPlant gets the default plant config.
func DefaultPlant() *PlantConfig {
	return &defaultPlantConfig
}

// NewPlantConfig creates a PlantConfig with defaults.
func NewPlantConfig() *PlantConfig {
	conf := defaultPlantConfig
	return &conf
}

// DutySource reports the duty cycle of a driver.
type DutySource interface {
	DutyCycle() float64
}

// Plant models two switch-mode drivers as first-order lags from duty
// cycle to output voltage, each feeding a resistive load. It produces
// the raw conversion results for the sample slots V1, V2, I1, I2.
type Plant struct {
	Config  PlantConfig
	Drivers [motor.NumChannels]DutySource

	name  string
	slots map[hal.ADCChannel]int

	lock      sync.Mutex
	volts     [motor.NumChannels]float64
	last      time.Time
	overrides map[int]byte
}

// NewPlant creates a Plant. channels lists the ADC channel of each
// sample slot.
func NewPlant(name string, conf PlantConfig, drivers [motor.NumChannels]DutySource, channels []hal.ADCChannel) *Plant {
	p := &Plant{
		Config:    conf,
		Drivers:   drivers,
		name:      name,
		slots:     make(map[hal.ADCChannel]int),
		overrides: make(map[int]byte),
	}
	for slot, ch := range channels {
		p.slots[ch] = slot
	}
	return p
}

// Name implements sim.Probe.
func (p *Plant) Name() string {
	return p.name
}

// Convert implements board.AnalogSource.
func (p *Plant) Convert(ch hal.ADCChannel, at time.Time) byte {
	slot, ok := p.slots[ch]
	if !ok {
		return 0
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.updateLocked(at)
	if counts, ok := p.overrides[slot]; ok {
		return counts
	}
	n := slot % motor.NumChannels
	if slot < motor.NumChannels {
		return motor.VoltageCounts(p.volts[n])
	}
	return motor.CurrentCounts(p.amps(p.volts[n]))
}

// Override pins a sample slot to fixed counts.
func (p *Plant) Override(slot int, counts byte) {
	p.lock.Lock()
	p.overrides[slot] = counts
	p.lock.Unlock()
}

// ClearOverride returns a sample slot to the model.
func (p *Plant) ClearOverride(slot int) {
	p.lock.Lock()
	delete(p.overrides, slot)
	p.lock.Unlock()
}

// Readings implements sim.Probe.
func (p *Plant) Readings() []sim.Reading {
	p.lock.Lock()
	defer p.lock.Unlock()
	readings := make([]sim.Reading, motor.NumChannels)
	for n := range readings {
		readings[n] = sim.Reading{
			Channel: n,
			Volts:   p.volts[n],
			Amps:    p.amps(p.volts[n]),
			Duty:    p.Drivers[n].DutyCycle(),
			At:      p.last,
		}
	}
	return readings
}

func (p *Plant) amps(v float64) float64 {
	if p.Config.LoadOhms <= 0 {
		return 0
	}
	return v / p.Config.LoadOhms
}

func (p *Plant) updateLocked(at time.Time) {
	if p.last.IsZero() || !at.After(p.last) {
		if p.last.IsZero() {
			p.last = at
		}
		return
	}
	dt := at.Sub(p.last)
	p.last = at
	alpha := 1.0
	if tau := p.Config.TimeConstant; tau > 0 {
		alpha = 1 - math.Exp(-float64(dt)/float64(tau))
	}
	for n, d := range p.Drivers {
		target := p.Config.SupplyVolts * d.DutyCycle()
		p.volts[n] += (target - p.volts[n]) * alpha
	}
}
