// Package sim defines what simulated instruments expose to observers.
package sim

import (
	"time"

	fx "github.com/robotalks/motorctl/pkg/framework"
)

// Reading is the electrical state of one driver channel.
type Reading struct {
	Channel int       `json:"channel"`
	Volts   float64   `json:"volts"`
	Amps    float64   `json:"amps"`
	Duty    float64   `json:"duty"`
	At      time.Time `json:"at"`
}

// Probe is an instrument producing Readings.
type Probe interface {
	fx.Named
	Readings() []Reading
}

// ReadingsListener listens for new readings.
type ReadingsListener interface {
	ReadingsChanged(fx.ControlContext, Probe)
}

// ReadingsSubscriber subscribes readings notifications.
type ReadingsSubscriber interface {
	SubscribeReadings(ReadingsListener)
}
