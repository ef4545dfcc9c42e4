package sim

import (
	fx "github.com/robotalks/motorctl/pkg/framework"
)

// ReadingsCaster provides a subscriber and implements
// listener to cast notifcations.
type ReadingsCaster struct {
	listeners []ReadingsListener
}

// SubscribeReadings implements ReadingsSubscriber.
func (c *ReadingsCaster) SubscribeReadings(ln ReadingsListener) {
	c.listeners = append(c.listeners, ln)
}

// ReadingsChanged implements ReadingsListener.
func (c *ReadingsCaster) ReadingsChanged(cc fx.ControlContext, p Probe) {
	for _, ln := range c.listeners {
		ln.ReadingsChanged(cc, p)
	}
}
