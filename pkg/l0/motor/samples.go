package motor

import "sync/atomic"

// Sample slots, in the order of Config.Channels.
const (
	SampleVoltage1 = iota
	SampleVoltage2
	SampleCurrent1
	SampleCurrent2

	NumSamples
)

// SampleSet holds the latest conversion result per channel.
// The conversion handler is the only writer. Every slot is atomic on
// its own, so a reader may combine samples from two sampling rounds.
type SampleSet struct {
	slots [NumSamples]atomic.Uint32
}

// Store records a sample.
func (s *SampleSet) Store(slot int, v byte) {
	s.slots[slot].Store(uint32(v))
}

// Load returns the latest sample of a slot.
func (s *SampleSet) Load(slot int) byte {
	return byte(s.slots[slot].Load())
}

// Snapshot copies all slots.
func (s *SampleSet) Snapshot() (out [NumSamples]byte) {
	for n := range out {
		out[n] = s.Load(n)
	}
	return
}
