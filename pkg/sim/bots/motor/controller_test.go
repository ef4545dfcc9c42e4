package motor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
	"github.com/robotalks/motorctl/pkg/sim"
)

type eventRecorder struct {
	lock   sync.Mutex
	events []*msgs.MotorStatusEvent
}

func (r *eventRecorder) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, msg.(*msgs.MotorStatusEvent))
	return nil
}

func (r *eventRecorder) count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.events)
}

type readingsCounter struct {
	count int
	last  []sim.Reading
}

func (c *readingsCounter) ReadingsChanged(cc fx.ControlContext, p sim.Probe) {
	c.count++
	c.last = p.Readings()
}

func TestControllerRegulatesPlant(t *testing.T) {
	conf := NewConfig()
	conf.RealTime = false
	ctl, err := conf.NewController(nil)
	require.NoError(t, err)
	rec := &eventRecorder{}
	ctl.Registrar = rec
	var readings readingsCounter
	ctl.SubscribeReadings(&readings)

	start := ctl.Board.Now()
	loop := fx.NewLoop()
	loop.Add(ctl)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	deadline := time.Now().Add(30 * time.Second)
	for ctl.Board.Now().Sub(start) < 5*time.Second {
		require.True(t, time.Now().Before(deadline), "simulation too slow")
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	require.Equal(t, context.Canceled, <-done)

	// the default limits are 220 counts (~221 V) and 72 counts (~2 A);
	// a 100 ohm load reaches the current limit first.
	for _, r := range ctl.Plant.Readings() {
		require.True(t, r.Amps > 1.6 && r.Amps < 2.1, "amps %v", r.Amps)
		require.True(t, r.Volts < 221)
	}
	require.True(t, rec.count() >= 9, "events %d", rec.count())
	require.True(t, readings.count > 0)
	require.Len(t, readings.last, 2)
}
