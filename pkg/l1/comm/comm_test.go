package comm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

func statusResponder(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg); ok {
			if _, ok := cmdMsg.Command.Msg().(*msgs.MotorStatusQuery); ok {
				mctx.MessageTaken()
				cmdMsg.Command.Done(&msgs.MotorStatus{Period: 800})
			}
		}
	}))
	return nil
}

func TestRegistrarAndBoardConn(t *testing.T) {
	boardEnd, hostEnd := NewMemoryPair(4)
	defer boardEnd.Close()

	var reg Registrar
	reg.Init(boardEnd)
	var conn BoardConn
	conn.Init(hostEnd)

	boardLoop := fx.NewLoop()
	boardLoop.Interval = 10 * time.Millisecond
	boardLoop.Add(&reg, &UnsupportedCommands{})
	boardLoop.AddController(fx.PrLvControl, fx.ControlFunc(statusResponder))

	events := make(chan *msgs.MotorStatusEvent, 1)
	hostLoop := fx.NewLoop()
	hostLoop.Interval = 10 * time.Millisecond
	hostLoop.Add(&conn)
	hostLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			if ev, ok := mctx.CurrentMessage().(*msgs.MotorStatusEvent); ok {
				mctx.MessageTaken()
				events <- ev
			}
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go boardLoop.Run(ctx)
	go hostLoop.Run(ctx)

	msg, err := l1.Wait(ctx, conn.DoCommand(&msgs.MotorStatusQuery{}), time.Second)
	require.NoError(t, err)
	require.Equal(t, uint32(800), msg.(*msgs.MotorStatus).Period)

	_, err = l1.Wait(ctx, conn.DoCommand(&msgs.MotorCapsQuery{}), time.Second)
	require.Error(t, err)
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), err.Error())
	require.Zero(t, conn.Pending())

	require.NoError(t, reg.SendEvent(ctx, &msgs.MotorStatusEvent{Frames: 2}))
	select {
	case ev := <-events:
		require.Equal(t, uint32(2), ev.Frames)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}
	require.Equal(t, uint64(3), reg.Stats().Sent)
}

func TestBoardConnExpiration(t *testing.T) {
	_, hostEnd := NewMemoryPair(4)
	var conn BoardConn
	conn.Init(hostEnd)
	f := conn.DoCommand(&msgs.MotorStatusQuery{})
	require.Equal(t, 1, conn.Pending())
	conn.expire(time.Now())
	require.Equal(t, 1, conn.Pending())
	conn.expire(time.Now().Add(2 * DefaultCommandExpiration))
	require.Zero(t, conn.Pending())
	_, err := l1.Wait(context.Background(), f, time.Second)
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestBoardConnSendError(t *testing.T) {
	a, hostEnd := NewMemoryPair(0)
	a.Close()
	var conn BoardConn
	conn.Init(hostEnd)
	_, err := l1.Wait(context.Background(), conn.DoCommand(&msgs.MotorStatusQuery{}), time.Second)
	require.Error(t, err)
	require.Zero(t, conn.Pending())
}

func TestPipeRepliesUndecodableCommand(t *testing.T) {
	boardEnd, hostEnd := NewMemoryPair(4)
	pipe := NewPipe(boardEnd)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pipe.Run(ctx) }()

	host := NewPipe(hostEnd)
	require.NoError(t, hostEnd.WritePacket([]byte{0xff}))
	require.NoError(t, host.SendTyped(&msgs.Typed{TypeId: msgs.GroupCustom | 1, Sequence: 9}))
	pkt, err := hostEnd.ReadPacket()
	require.NoError(t, err)
	typed, err := msgs.DecodeTyped(pkt)
	require.NoError(t, err)
	require.Equal(t, msgs.CommandErrTypeID, typed.TypeId)
	require.Equal(t, uint32(9), typed.Sequence)

	cancel()
	require.Equal(t, context.Canceled, <-done)
	require.Equal(t, uint64(2), pipe.Stats().Malformed)
}
