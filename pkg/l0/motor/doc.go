// Package motor implements the dual channel motor driver regulator.
//
// Three interrupt handlers and one periodic controller share state
// through a Core:
//
//   - tick (timer overflow): advances the PulseCounter.
//   - edge (protocol input): feeds the link.Decoder and publishes
//     validated frames to the Setpoint.
//   - conversion (ADC): the Sampler stores the result into the
//     SampleSet and starts the next channel.
//   - control (Loop): the Controller compares samples against the
//     setpoint and steps each duty register by at most one count.
package motor
