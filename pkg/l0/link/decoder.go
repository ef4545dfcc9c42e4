package link

import "sync/atomic"

// Timing constants of the line code, in reference ticks and edges.
const (
	// ShortPulseTicks separates a 1 (shorter) from a 0 (this long or longer).
	ShortPulseTicks byte = 5
	// IdleTicks is the saturation value of the tick counter. An edge seen
	// with the counter saturated restarts framing.
	IdleTicks byte = 255

	EdgesPerBit   = 2
	BitsPerByte   = 8
	EdgesPerByte  = EdgesPerBit * BitsPerByte
	EdgesPerFrame = EdgesPerByte * FrameSize
)

// DecodeState is the state reached after consuming one edge.
type DecodeState int

// Decoder states.
const (
	// StateResync means an idle gap restarted framing on this edge.
	StateResync DecodeState = iota
	// StateAccumulatingBit means the edge was consumed mid-byte.
	StateAccumulatingBit
	// StateByteComplete means the edge completed a byte.
	StateByteComplete
	// StateFrameComplete means the edge completed a valid frame.
	StateFrameComplete
	// StateFrameDropped means the edge completed a frame failing the checksum.
	StateFrameDropped
)

// String implements fmt.Stringer.
func (s DecodeState) String() string {
	switch s {
	case StateResync:
		return "resync"
	case StateAccumulatingBit:
		return "bit"
	case StateByteComplete:
		return "byte"
	case StateFrameComplete:
		return "frame"
	case StateFrameDropped:
		return "dropped"
	}
	return "unknown"
}

// DecodeResult is the result of consuming one edge.
type DecodeResult struct {
	State DecodeState
	// Bit is the decoded bit, or -1 on a clock-only edge.
	Bit int
	// Frame is set when State is StateFrameComplete.
	Frame *Frame
}

// Stats counts decoder activity.
type Stats struct {
	Edges   uint32
	Resyncs uint32
	Frames  uint32
	Dropped uint32
}

// Decoder assembles frames from edge timings. Edge and Reset belong to
// the edge interrupt; Stats may be read from anywhere.
type Decoder struct {
	edge byte
	acc  byte
	crc  byte
	buf  Frame

	edges   atomic.Uint32
	resyncs atomic.Uint32
	frames  atomic.Uint32
	dropped atomic.Uint32
}

// Edge consumes one edge. pulse is the tick counter value sampled at
// the edge, i.e. the ticks elapsed since the previous edge, saturated
// at IdleTicks.
func (d *Decoder) Edge(pulse byte) (r DecodeResult) {
	d.edges.Add(1)
	r.State, r.Bit = StateAccumulatingBit, -1
	if pulse == IdleTicks {
		d.edge, d.crc = 0, 0
		d.resyncs.Add(1)
		r.State = StateResync
	}

	if d.edge&1 != 0 {
		d.acc <<= 1
		r.Bit = 0
		if pulse < ShortPulseTicks {
			d.acc |= 1
			r.Bit = 1
		}
	}

	d.edge++
	if d.edge%EdgesPerByte != 0 {
		return
	}
	d.buf[d.edge/EdgesPerByte-1] = d.acc
	d.crc ^= d.acc
	r.State = StateByteComplete
	if d.edge != EdgesPerFrame {
		return
	}

	// crc is only cleared by a resync, not here.
	d.edge = 0
	if d.crc != 0 {
		d.dropped.Add(1)
		r.State = StateFrameDropped
		return
	}
	frame := d.buf
	d.frames.Add(1)
	r.State, r.Frame = StateFrameComplete, &frame
	return
}

// Position returns the edge count within the current frame and the
// running checksum.
func (d *Decoder) Position() (edge, crc byte) {
	return d.edge, d.crc
}

// Stats returns the activity counters.
func (d *Decoder) Stats() Stats {
	return Stats{
		Edges:   d.edges.Load(),
		Resyncs: d.resyncs.Load(),
		Frames:  d.frames.Load(),
		Dropped: d.dropped.Load(),
	}
}

// Reset clears framing state. Counters are kept.
func (d *Decoder) Reset() {
	d.edge, d.acc, d.crc = 0, 0, 0
}
