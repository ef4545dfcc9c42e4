package link

import "fmt"

// Timing selects the intervals, in reference ticks, a transmitter
// places before each kind of edge.
type Timing struct {
	// Idle precedes the first edge of a frame.
	Idle uint16
	// Clock precedes each clock-only edge.
	Clock byte
	// One and Zero precede a data edge carrying that bit.
	One  byte
	Zero byte
}

// DefaultTiming keeps every interval well away from the thresholds.
var DefaultTiming = Timing{Idle: 260, Clock: 3, One: 2, Zero: 8}

// Validate checks the timing is decodable.
func (t Timing) Validate() error {
	if t.Idle < uint16(IdleTicks) {
		return fmt.Errorf("idle gap %d below %d ticks", t.Idle, IdleTicks)
	}
	if t.Clock == 0 || t.Clock >= IdleTicks {
		return fmt.Errorf("clock interval %d out of range [1, %d)", t.Clock, IdleTicks)
	}
	if t.One == 0 || t.One >= ShortPulseTicks {
		return fmt.Errorf("one interval %d out of range [1, %d)", t.One, ShortPulseTicks)
	}
	if t.Zero < ShortPulseTicks || t.Zero >= IdleTicks {
		return fmt.Errorf("zero interval %d out of range [%d, %d)", t.Zero, ShortPulseTicks, IdleTicks)
	}
	return nil
}

// Encode returns the ticks elapsed before each of the EdgesPerFrame
// edges transmitting f. The frame is sent as is, sealing is up to the
// caller.
func Encode(f Frame, t Timing) []uint16 {
	edges := make([]uint16, 0, EdgesPerFrame)
	for _, b := range f {
		for bit := BitsPerByte - 1; bit >= 0; bit-- {
			if len(edges) == 0 {
				edges = append(edges, t.Idle)
			} else {
				edges = append(edges, uint16(t.Clock))
			}
			if b&(1<<uint(bit)) != 0 {
				edges = append(edges, uint16(t.One))
			} else {
				edges = append(edges, uint16(t.Zero))
			}
		}
	}
	return edges
}

// Duration returns the total ticks spanned by the intervals.
func Duration(intervals []uint16) (ticks uint32) {
	for _, n := range intervals {
		ticks += uint32(n)
	}
	return
}
