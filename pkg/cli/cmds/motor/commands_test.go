package motor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

func TestParseLimits(t *testing.T) {
	msg, err := ParseLimits([]string{"200", "180.5", "2", "1.5"})
	require.NoError(t, err)
	require.Equal(t, []float32{200, 180.5}, msg.Volts)
	require.Equal(t, []float32{2, 1.5}, msg.Amps)

	for _, args := range [][]string{nil, {"1", "2", "3"}, {"1", "2", "3", "x"}, {"1", "2", "3", "-1"}} {
		_, err = ParseLimits(args)
		require.Error(t, err)
	}
}

func TestParseFrame(t *testing.T) {
	msg, err := ParseFrame([]string{"220", "0xdc", "72", "72", "0", "0", "0", "0", "--seal"})
	require.NoError(t, err)
	require.Equal(t, []byte{220, 220, 72, 72, 0, 0, 0, 0}, msg.Frame)
	require.True(t, msg.Seal)

	_, err = ParseFrame([]string{"1", "2"})
	require.Error(t, err)
	_, err = ParseFrame([]string{"256", "0", "0", "0", "0", "0", "0", "0"})
	require.Error(t, err)
}

func TestFormatStatus(t *testing.T) {
	out, ok := FormatStatus(&msgs.MotorStatus{
		Volts:    []float32{200, 0},
		Amps:     []float32{2, 0},
		Duty:     []uint32{533, 0},
		Period:   800,
		Setpoint: []byte{220, 220, 72, 72, 0, 0, 0, 0},
		Frames:   1,
	})
	require.True(t, ok)
	require.Equal(t, "CH1 200.0V 2.00A duty 533/800 | CH2 0.0V 0.00A duty 0/800 | limits dc dc 48 48 | frames 1 dropped 0", out)

	_, ok = FormatStatus(&msgs.MotorStatus{})
	require.False(t, ok)
	_, ok = FormatStatus(&msgs.CommandOK{})
	require.False(t, ok)
}
