// Package link implements the single-wire command link.
package link

// The link is one-directional and best-effort. A transmitter toggles a
// single line; the receiver only sees the time between transitions,
// measured in reference ticks (one per PWM period). Transitions come in
// pairs: the first of a pair is a clock transition whose interval is
// ignored, the second carries one bit. A short interval (below
// ShortPulseTicks) is a 1, anything longer is a 0. Bits are sent MSB
// first, 16 transitions per byte, 8 bytes per frame. A frame is accepted
// only when the XOR of all 8 bytes is zero.
//
// There is no preamble. Any gap long enough to saturate the tick counter
// (IdleTicks) restarts framing on the next transition.
//
// Producer: bench transmitter (L1)
// Consumer: motor controller (L0)
