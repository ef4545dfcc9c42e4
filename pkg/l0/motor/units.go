package motor

// Analog front end scaling, full scale 5 V over 256 counts.
const (
	// VoltsPerCount through the 103:2 divider.
	VoltsPerCount = 5.0 * 103 / 2 / 256
	// AmpsPerCount through the 0.7 ohm shunt amplifier.
	AmpsPerCount = 5.0 * 10 / 7 / 256
)

// Volts converts a voltage sample or limit.
func Volts(counts byte) float64 {
	return float64(counts) * VoltsPerCount
}

// Amps converts a current sample or limit.
func Amps(counts byte) float64 {
	return float64(counts) * AmpsPerCount
}

// VoltageCounts converts volts to the nearest count, saturating.
func VoltageCounts(v float64) byte {
	return toCounts(v / VoltsPerCount)
}

// CurrentCounts converts amps to the nearest count, saturating.
func CurrentCounts(a float64) byte {
	return toCounts(a / AmpsPerCount)
}

func toCounts(c float64) byte {
	switch {
	case c <= 0:
		return 0
	case c >= 255:
		return 255
	}
	return byte(c + 0.5)
}
