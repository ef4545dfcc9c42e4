package link

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pulses converts intervals to the counter values seen at each edge.
func pulses(intervals []uint16) []byte {
	out := make([]byte, len(intervals))
	for n, ticks := range intervals {
		if ticks >= uint16(IdleTicks) {
			out[n] = IdleTicks
		} else {
			out[n] = byte(ticks)
		}
	}
	return out
}

func framePulses(f Frame) []byte {
	return pulses(Encode(f, DefaultTiming))
}

func feed(d *Decoder, in []byte) (results []DecodeResult) {
	for _, p := range in {
		results = append(results, d.Edge(p))
	}
	return
}

func last(results []DecodeResult) DecodeResult {
	return results[len(results)-1]
}

func TestDecoderThreshold(t *testing.T) {
	for _, clock := range []byte{1, 4, 5, 100, 254} {
		for p := 0; p < int(IdleTicks); p++ {
			var d Decoder
			in := []byte{IdleTicks, byte(p)}
			for n := 1; n < BitsPerByte; n++ {
				in = append(in, clock, byte(p))
			}
			results := feed(&d, in)
			var expect byte
			if byte(p) < ShortPulseTicks {
				expect = 0xff
			}
			require.Equal(t, StateByteComplete, last(results).State, "pulse %d clock %d", p, clock)
			_, crc := d.Position()
			require.Equal(t, expect, crc, "pulse %d clock %d", p, clock)
			for n, r := range results {
				if n&1 == 0 {
					require.Equal(t, -1, r.Bit)
				} else {
					require.Equal(t, int(expect&1), r.Bit)
				}
			}
		}
	}
}

func TestDecoderFrames(t *testing.T) {
	testCases := []struct {
		name   string
		frame  Frame
		expect DecodeState
	}{
		{"default setpoint", Frame{220, 220, 72, 72, 0, 0, 0, 0}, StateFrameComplete},
		{"all zero", Frame{}, StateFrameComplete},
		{"sealed limits", NewLimitsFrame(180, 90, 40, 100), StateFrameComplete},
		{"all ones", Frame{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, StateFrameComplete},
		{"bad checksum", Frame{220, 220, 72, 72, 0, 0, 0, 1}, StateFrameDropped},
		{"single bit error", Frame{221, 220, 72, 72, 0, 0, 0, 0}, StateFrameDropped},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Decoder
			results := feed(&d, framePulses(tc.frame))
			require.Len(t, results, EdgesPerFrame)
			require.Equal(t, StateResync, results[0].State)
			for _, r := range results[:len(results)-1] {
				require.Nil(t, r.Frame)
			}
			r := last(results)
			require.Equal(t, tc.expect, r.State)
			if tc.expect == StateFrameComplete {
				require.NotNil(t, r.Frame)
				require.Equal(t, tc.frame, *r.Frame)
			} else {
				require.Nil(t, r.Frame)
			}
			edge, _ := d.Position()
			require.Zero(t, edge)
		})
	}
}

func TestDecoderReplay(t *testing.T) {
	var d Decoder
	frame := Frame{220, 220, 72, 72, 0, 0, 0, 0}
	first := last(feed(&d, framePulses(frame)))
	second := last(feed(&d, framePulses(frame)))
	require.Equal(t, StateFrameComplete, first.State)
	require.Equal(t, StateFrameComplete, second.State)
	require.Equal(t, *first.Frame, *second.Frame)
	require.Equal(t, Stats{Edges: 2 * EdgesPerFrame, Resyncs: 2, Frames: 2}, d.Stats())
}

func TestDecoderResync(t *testing.T) {
	var d Decoder
	partial := framePulses(Frame{0x5a, 0xa5, 0x3c})[:EdgesPerByte*2+5]
	feed(&d, partial)
	edge, crc := d.Position()
	require.EqualValues(t, EdgesPerByte*2+5, edge)
	require.EqualValues(t, 0x5a^0xa5, crc)

	r := d.Edge(IdleTicks)
	require.Equal(t, StateResync, r.State)
	require.Equal(t, -1, r.Bit)
	edge, crc = d.Position()
	// the resync edge itself is counted as edge 0
	require.EqualValues(t, 1, edge)
	require.Zero(t, crc)

	frame := NewLimitsFrame(1, 2, 3, 4)
	r = last(feed(&d, framePulses(frame)))
	require.Equal(t, StateFrameComplete, r.State)
	require.Equal(t, frame, *r.Frame)
}

func TestDecoderChecksumCarriesWithoutGap(t *testing.T) {
	var d Decoder
	bad := Frame{1}
	good := NewLimitsFrame(200, 200, 50, 50)

	require.Equal(t, StateFrameDropped, last(feed(&d, framePulses(bad))).State)
	// no idle gap: the running checksum of the dropped frame is kept
	in := framePulses(good)
	in[0] = DefaultTiming.Clock
	require.Equal(t, StateFrameDropped, last(feed(&d, in)).State)
	// an idle gap clears it
	require.Equal(t, StateFrameComplete, last(feed(&d, framePulses(good))).State)
	require.Equal(t, Stats{Edges: 3 * EdgesPerFrame, Resyncs: 2, Frames: 1, Dropped: 2}, d.Stats())
}

func TestDecoderColdStart(t *testing.T) {
	var d Decoder
	// garbage before the first gap is discarded by the resync
	feed(&d, []byte{3, 7, 1, 9, 2})
	frame := Frame{220, 220, 72, 72, 0, 0, 0, 0}
	r := last(feed(&d, framePulses(frame)))
	require.Equal(t, StateFrameComplete, r.State)
	require.Equal(t, frame, *r.Frame)
}
