package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

func TestNewConnector(t *testing.T) {
	_, err := NewConnector("mqtt://localhost:1883")
	require.Error(t, err)
	c, err := NewConnector("ws://localhost:8080/board/")
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:8080/board/l1", c.url("", PathL1))
	require.Equal(t, "http://localhost:8080/board/meta", c.url("http", PathMeta))
}

func TestServerAndConnector(t *testing.T) {
	info := l1.BoardInfo{
		Ref:  l1.BoardRef{Type: "motor", ID: "ws0"},
		Meta: l1.BoardMeta{Description: "test board"},
	}
	srv := NewServer("127.0.0.1:0", info)
	boardLoop := fx.NewLoop()
	boardLoop.Interval = 10 * time.Millisecond
	boardLoop.Add(srv, &comm.UnsupportedCommands{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go boardLoop.Run(ctx)

	addr, err := srv.ListenAddr(ctx)
	require.NoError(t, err)
	connector, err := NewConnector("ws://" + addr.String())
	require.NoError(t, err)

	boards, err := connector.Discover(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, info.Ref, boards[0].Ref)
	require.Equal(t, "test board", boards[0].Meta.Description)

	_, err = connector.Connect(ctx, l1.BoardRef{})
	require.Error(t, err)

	conn, err := connector.Connect(ctx, boards[0].Ref)
	require.NoError(t, err)
	hostLoop := fx.NewLoop()
	hostLoop.Interval = 10 * time.Millisecond
	hostLoop.Add(conn.(fx.LoopAdder))
	go hostLoop.Run(ctx)

	_, err = l1.Wait(ctx, conn.DoCommand(&msgs.MotorCapsQuery{}), 2*time.Second)
	require.Error(t, err)
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), err.Error())
	require.Equal(t, 1, srv.Connections())
}
