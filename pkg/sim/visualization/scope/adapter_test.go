package scope

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/sim"
)

type testProbe struct {
	sim.ReadingsCaster
	volts float64
}

func (p *testProbe) Name() string { return "motor/t0" }

func (p *testProbe) Readings() []sim.Reading {
	return []sim.Reading{{Channel: 0, Volts: p.volts}}
}

func TestAdapterWritesTraces(t *testing.T) {
	var buf bytes.Buffer
	conf := &Config{Interval: 10 * time.Millisecond}
	a := NewAdapter(conf, &buf)
	probe := &testProbe{volts: 12}
	a.Subscribe(probe)

	loop := fx.NewLoop()
	loop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		probe.ReadingsChanged(cc, probe)
		return nil
	}))
	loop.Add(a)

	t0 := time.Unix(100, 0)
	ctx := context.Background()
	loop.Iterate(ctx, t0)
	loop.Iterate(ctx, t0.Add(5*time.Millisecond))
	probe.volts = 24
	loop.Iterate(ctx, t0.Add(10*time.Millisecond))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var trace Trace
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &trace))
	require.Equal(t, "motor/t0", trace.Probe)
	require.True(t, trace.Time.Equal(t0.Add(10*time.Millisecond)))
	require.Len(t, trace.Readings, 1)
	require.Equal(t, 24.0, trace.Readings[0].Volts)
}

func TestConfigEnabled(t *testing.T) {
	conf := NewConfig()
	require.False(t, conf.Enabled())
	conf.Output = "-"
	require.True(t, conf.Enabled())
	a, closer, err := conf.NewAdapter()
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NoError(t, closer.Close())
}
