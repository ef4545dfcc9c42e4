package link

// FrameSize is the number of bytes in a command frame.
const FrameSize = 8

// Byte offsets of the limits consumed by the motor controller. The
// remaining bytes are reserved; the last one conventionally carries the
// checksum.
const (
	OffsetVoltageLimit = 0
	OffsetCurrentLimit = 2
)

// Frame is one command frame: per channel voltage and current limits in
// raw ADC counts plus reserved bytes.
type Frame [FrameSize]byte

// DefaultFrame is the setpoint in effect before any frame is received.
var DefaultFrame = Frame{220, 220, 72, 72, 0, 0, 0, 0}

// NewLimitsFrame builds a sealed frame from per channel limits.
func NewLimitsFrame(v1, v2, i1, i2 byte) Frame {
	f := Frame{v1, v2, i1, i2}
	f.Seal()
	return f
}

// Checksum returns the XOR of all bytes.
func (f Frame) Checksum() (crc byte) {
	for _, b := range f {
		crc ^= b
	}
	return
}

// Valid reports whether the frame passes the checksum.
func (f Frame) Valid() bool {
	return f.Checksum() == 0
}

// Seal overwrites the last byte so the checksum becomes zero.
func (f *Frame) Seal() {
	f[FrameSize-1] = 0
	f[FrameSize-1] = f.Checksum()
}

// VoltageLimit returns the voltage limit of channel ch (0 or 1).
func (f Frame) VoltageLimit(ch int) byte {
	return f[OffsetVoltageLimit+ch]
}

// CurrentLimit returns the current limit of channel ch (0 or 1).
func (f Frame) CurrentLimit(ch int) byte {
	return f[OffsetCurrentLimit+ch]
}
