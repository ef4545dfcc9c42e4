package link

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimingValidate(t *testing.T) {
	require.NoError(t, DefaultTiming.Validate())
	testCases := []struct {
		name   string
		timing Timing
	}{
		{"short idle", Timing{Idle: 254, Clock: 3, One: 2, Zero: 8}},
		{"zero clock", Timing{Idle: 300, Clock: 0, One: 2, Zero: 8}},
		{"one at threshold", Timing{Idle: 300, Clock: 3, One: 5, Zero: 8}},
		{"zero below threshold", Timing{Idle: 300, Clock: 3, One: 2, Zero: 4}},
		{"zero saturates", Timing{Idle: 300, Clock: 3, One: 2, Zero: 255}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.timing.Validate())
		})
	}
}

func TestEncode(t *testing.T) {
	intervals := Encode(Frame{0x80}, DefaultTiming)
	require.Len(t, intervals, EdgesPerFrame)
	require.Equal(t, DefaultTiming.Idle, intervals[0])
	require.EqualValues(t, DefaultTiming.One, intervals[1])
	require.EqualValues(t, DefaultTiming.Clock, intervals[2])
	require.EqualValues(t, DefaultTiming.Zero, intervals[3])
	require.EqualValues(t, uint32(DefaultTiming.Idle)+63*3+2+63*8, Duration(intervals))
}

func TestEncodeDecode(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	timings := []Timing{
		DefaultTiming,
		{Idle: 255, Clock: 1, One: 4, Zero: 5},
		{Idle: 1000, Clock: 200, One: 1, Zero: 254},
	}
	var d Decoder
	for _, timing := range timings {
		for n := 0; n < 50; n++ {
			var f Frame
			rnd.Read(f[:])
			f.Seal()
			r := last(feed(&d, pulses(Encode(f, timing))))
			require.Equal(t, StateFrameComplete, r.State)
			require.Equal(t, f, *r.Frame)
		}
	}
}

func TestFrame(t *testing.T) {
	f := NewLimitsFrame(200, 100, 60, 30)
	require.True(t, f.Valid())
	require.EqualValues(t, 200, f.VoltageLimit(0))
	require.EqualValues(t, 100, f.VoltageLimit(1))
	require.EqualValues(t, 60, f.CurrentLimit(0))
	require.EqualValues(t, 30, f.CurrentLimit(1))
	require.True(t, DefaultFrame.Valid())
	f[4] = 1
	require.False(t, f.Valid())
}
