package motor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/motorctl/pkg/l0/link"
	"github.com/robotalks/motorctl/pkg/sim/board"
)

func TestPulseCounter(t *testing.T) {
	var p PulseCounter
	for n := 0; n < 300; n++ {
		p.Tick()
	}
	require.Equal(t, link.IdleTicks, p.Value())
	require.Equal(t, link.IdleTicks, p.Take())
	require.Zero(t, p.Value())
	p.Tick()
	p.Tick()
	require.Equal(t, byte(2), p.Take())
	p.Arm()
	p.Tick()
	require.Equal(t, link.IdleTicks, p.Value())
}

func TestSampleSet(t *testing.T) {
	var s SampleSet
	s.Store(SampleCurrent2, 9)
	s.Store(SampleVoltage1, 200)
	require.Equal(t, [NumSamples]byte{200, 0, 0, 9}, s.Snapshot())
	require.Equal(t, byte(9), s.Load(SampleCurrent2))
}

func TestSetpointPolicies(t *testing.T) {
	b := board.New(board.Config{})
	for _, policy := range []SetpointPolicy{PolicyTorn, PolicySwap, PolicyMasked} {
		t.Run(string(policy), func(t *testing.T) {
			s := NewSetpoint(policy, b.Interrupts(), link.DefaultFrame)
			require.Equal(t, policy, s.Policy())
			require.Equal(t, link.DefaultFrame, s.Load())
			f := link.NewLimitsFrame(1, 2, 3, 4)
			s.Publish(f)
			require.Equal(t, f, s.Load())
		})
	}
}

func TestUnits(t *testing.T) {
	require.InDelta(t, 221.3, Volts(220), 0.1)
	require.InDelta(t, 2.0, Amps(72), 0.01)
	require.Equal(t, byte(220), VoltageCounts(Volts(220)))
	require.Equal(t, byte(72), CurrentCounts(Amps(72)))
	require.Equal(t, byte(0), CurrentCounts(-1))
	require.Equal(t, byte(255), VoltageCounts(1000))
}
