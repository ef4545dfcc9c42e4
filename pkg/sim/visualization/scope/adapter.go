// Package scope traces simulated readings as JSON lines, one line per
// probe and sample time, for plotting.
package scope

import (
	"encoding/json"
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/sim"
)

// Trace is one line of output.
type Trace struct {
	Probe    string        `json:"probe"`
	Time     time.Time     `json:"time"`
	Readings []sim.Reading `json:"readings"`
}

// Adapter records probes and writes their readings periodically.
type Adapter struct {
	Config *Config

	enc     *json.Encoder
	updated map[string]sim.Probe
	lastAt  time.Time
}

// NewAdapter creates the adapter.
func NewAdapter(config *Config, w io.Writer) *Adapter {
	return &Adapter{Config: config, enc: json.NewEncoder(w)}
}

// Subscribe is a helper to subscribe readings.
func (a *Adapter) Subscribe(sub sim.ReadingsSubscriber) *Adapter {
	sub.SubscribeReadings(a)
	return a
}

// ReadingsChanged implements ReadingsListener.
func (a *Adapter) ReadingsChanged(cc fx.ControlContext, p sim.Probe) {
	if a.updated == nil {
		a.updated = make(map[string]sim.Probe)
	}
	a.updated[p.Name()] = p
}

// AddToLoop implements LoopAdder.
func (a *Adapter) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(a.ReportChanges))
}

// ReportChanges is a controller to write traces.
func (a *Adapter) ReportChanges(cc fx.ControlContext) error {
	now := cc.Time()
	if len(a.updated) == 0 {
		return nil
	}
	if !a.lastAt.IsZero() && now.Sub(a.lastAt) < a.Config.Interval {
		return nil
	}
	a.lastAt = now
	for name, p := range a.updated {
		if err := a.enc.Encode(&Trace{Probe: name, Time: now, Readings: p.Readings()}); err != nil {
			glog.Warningf("scope: %v", err)
		}
	}
	a.updated = nil
	return nil
}
