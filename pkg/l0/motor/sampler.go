package motor

import (
	"sync/atomic"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// Sampler round-robins the analog channels, one conversion in flight.
type Sampler struct {
	adc      hal.ADC
	channels []hal.ADCChannel
	samples  *SampleSet

	index       int
	conversions atomic.Uint32
}

// NewSampler creates a Sampler storing into samples.
func NewSampler(adc hal.ADC, channels []hal.ADCChannel, samples *SampleSet) *Sampler {
	return &Sampler{adc: adc, channels: channels, samples: samples}
}

// Start powers up the converter and starts the first conversion.
func (s *Sampler) Start() {
	s.index = 0
	s.adc.Select(s.channels[0])
	s.adc.PowerUp()
	s.adc.Start()
}

// HandleConversion is the conversion complete handler.
func (s *Sampler) HandleConversion() {
	s.samples.Store(s.index, s.adc.Result())
	s.index++
	if s.index >= len(s.channels) {
		s.index = 0
	}
	s.adc.Select(s.channels[s.index])
	s.adc.Start()
	s.conversions.Add(1)
}

// Rearm restarts the conversion of the current channel.
// Interrupts must be masked.
func (s *Sampler) Rearm() {
	s.adc.Select(s.channels[s.index])
	s.adc.Start()
}

// Conversions returns the number of completed conversions.
func (s *Sampler) Conversions() uint32 {
	return s.conversions.Load()
}
