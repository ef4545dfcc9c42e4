package motor

import (
	"errors"
	"fmt"

	"github.com/robotalks/motorctl/pkg/l0/hal"
)

// NumChannels is the number of motor channels.
const NumChannels = 2

// ErrClockMismatch is returned when the board timer clock differs from
// Config.SystemClock.
var ErrClockMismatch = errors.New("system clock mismatch")

// TickTimer is the PWM timer whose overflow paces the pulse counter.
const TickTimer = 0

// Configure programs both PWM timers and the protocol input.
// Interrupts must not be enabled yet.
func Configure(b hal.Board, conf *Config) (uint16, error) {
	if clk := b.SystemClock(); clk != conf.SystemClock {
		return 0, fmt.Errorf("%w: board %d Hz, configured %d Hz", ErrClockMismatch, clk, conf.SystemClock)
	}
	period, err := conf.Period()
	if err != nil {
		return 0, err
	}
	for n := 0; n < NumChannels; n++ {
		timer := b.PWM(n)
		if timer == nil {
			return 0, fmt.Errorf("PWM%d not available", n)
		}
		err := timer.Configure(hal.PWMConfig{
			Period:            period,
			Mode:              hal.CountUpEdgeAligned,
			Polarity:          hal.ActiveLow,
			OverflowInterrupt: n == TickTimer,
		})
		if err != nil {
			return 0, fmt.Errorf("configure PWM%d: %v", n, err)
		}
		hal.SetDuty(timer.Compare(), 0)
		timer.Start()
	}
	b.EdgeInput().Sense(hal.EdgeBoth)
	return period, nil
}
