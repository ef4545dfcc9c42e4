package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/motor"
)

type fixedDuty float64

func (d fixedDuty) DutyCycle() float64 { return float64(d) }

var testChannels = []hal.ADCChannel{3, 2, 5, 6}

func TestPlantSettles(t *testing.T) {
	conf := NewPlantConfig()
	p := NewPlant("motor/p0", *conf, [motor.NumChannels]DutySource{fixedDuty(0.5), fixedDuty(0)}, testChannels)
	t0 := time.Unix(0, 0)
	require.Zero(t, p.Convert(3, t0))
	require.Zero(t, p.Convert(3, t0.Add(-time.Second)))

	// after many time constants the output reaches the target.
	settled := t0.Add(50 * conf.TimeConstant)
	require.Equal(t, motor.VoltageCounts(150), p.Convert(3, settled))
	require.Equal(t, motor.CurrentCounts(1.5), p.Convert(5, settled))
	require.Zero(t, p.Convert(2, settled))
	require.Zero(t, p.Convert(6, settled))
	require.Zero(t, p.Convert(7, settled))

	readings := p.Readings()
	require.Len(t, readings, 2)
	require.InDelta(t, 150, readings[0].Volts, 0.01)
	require.InDelta(t, 1.5, readings[0].Amps, 0.01)
	require.Equal(t, 0.5, readings[0].Duty)
	require.Equal(t, settled, readings[0].At)
	require.Equal(t, "motor/p0", p.Name())
}

func TestPlantLag(t *testing.T) {
	conf := PlantConfig{SupplyVolts: 100, LoadOhms: 10, TimeConstant: time.Millisecond}
	p := NewPlant("p", conf, [motor.NumChannels]DutySource{fixedDuty(1), fixedDuty(1)}, testChannels)
	t0 := time.Unix(0, 0)
	p.Convert(3, t0)
	p.Convert(3, t0.Add(time.Millisecond))
	// one time constant covers 1-1/e of the step.
	require.InDelta(t, 63.2, p.Readings()[0].Volts, 0.1)
}

func TestPlantOverride(t *testing.T) {
	p := NewPlant("p", *NewPlantConfig(), [motor.NumChannels]DutySource{fixedDuty(0), fixedDuty(0)}, testChannels)
	now := time.Unix(0, 0)
	p.Override(motor.SampleCurrent2, 200)
	require.Equal(t, byte(200), p.Convert(6, now))
	p.ClearOverride(motor.SampleCurrent2)
	require.Zero(t, p.Convert(6, now))
}
