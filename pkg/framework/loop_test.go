package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	n int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func TestLoopPriorityOrder(t *testing.T) {
	var order []int
	loop := NewLoop()
	for _, lv := range []int{PrLvPostProc, PrLvSense, PrLvActuate, PrLvControl} {
		lv := lv
		loop.AddController(lv, ControlFunc(func(cc ControlContext) error {
			require.Equal(t, lv, cc.PriorityLevel())
			order = append(order, lv)
			return nil
		}))
	}
	loop.Iterate(context.Background(), time.Unix(1, 0))
	require.Equal(t, []int{PrLvSense, PrLvControl, PrLvActuate, PrLvPostProc}, order)
}

func TestLoopMessages(t *testing.T) {
	loop := NewLoop()
	var taken, seen []int
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			m := mctx.CurrentMessage().(*testMsg)
			if m.n%2 == 0 {
				mctx.MessageTaken()
				taken = append(taken, m.n)
			}
			if m.n == 4 {
				mctx.StopProcessing()
			}
		}))
		return nil
	}))
	loop.AddController(PrLvIdle, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			seen = append(seen, mctx.CurrentMessage().(*testMsg).n)
		}))
		return nil
	}))
	for n := 1; n <= 6; n++ {
		loop.PostMessage(&testMsg{n: n})
	}
	loop.Iterate(context.Background(), time.Now())
	require.Equal(t, []int{2, 4}, taken)
	require.Equal(t, []int{1, 3, 5, 6}, seen)

	taken, seen = nil, nil
	loop.Iterate(context.Background(), time.Now())
	require.Empty(t, taken)
	require.Empty(t, seen)
}

func TestLoopHooks(t *testing.T) {
	loop := NewLoop()
	var calls []string
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		calls = append(calls, "ctl")
		if len(calls) == 1 {
			cc.PostRun(ControlFunc(func(ControlContext) error {
				calls = append(calls, "post")
				return nil
			}))
		}
		return nil
	}))
	loop.PreRunAt(PrLvControl, ControlFunc(func(ControlContext) error {
		calls = append(calls, "pre")
		return nil
	}))
	loop.Iterate(context.Background(), time.Now())
	loop.Iterate(context.Background(), time.Now())
	require.Equal(t, []string{"pre", "ctl", "post", "ctl"}, calls)
}

func TestLoopTicks(t *testing.T) {
	ticks := make(chan time.Time)
	times := make(chan time.Time, 4)
	woken := make(chan bool, 4)
	loop := NewLoop()
	loop.Ticks = ticks
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		times <- cc.Time()
		woken <- cc.WokenUp()
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	t0 := time.Unix(1000, 0)
	ticks <- t0
	require.Equal(t, t0, <-times)
	require.False(t, <-woken)
	loop.TriggerNext()
	require.Equal(t, t0, <-times)
	require.True(t, <-woken)
	ticks <- t0.Add(time.Second)
	require.Equal(t, t0.Add(time.Second), <-times)
	require.False(t, <-woken)

	close(ticks)
	require.NoError(t, <-done)
}

type testRunnable struct {
	err error
}

func (r *testRunnable) Run(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestLoopRunsRunnables(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Millisecond
	started := make(chan LoopControl, 1)
	loop.AddRunnable(RunnableFunc(func(ctx context.Context) error {
		started <- LoopCtlFrom(ctx)
		<-ctx.Done()
		return ctx.Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	require.NotNil(t, <-started)
	cancel()
	require.Equal(t, context.Canceled, <-done)
}
