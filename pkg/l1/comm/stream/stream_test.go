package stream

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

type buffer struct {
	bytes.Buffer
}

func TestReadWriter(t *testing.T) {
	var buf buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte{1, 2, 3}))
	require.NoError(t, rw.WritePacket(nil))
	require.Equal(t, []byte{3, 0, 0, 0, 1, 2, 3, 0, 0, 0, 0}, buf.Bytes())

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
	_, err = rw.ReadPacket()
	require.Equal(t, io.EOF, err)
	require.NoError(t, rw.Close())
}

func TestReadWriterLimits(t *testing.T) {
	var buf buffer
	rw := New(&buf)
	require.Error(t, rw.WritePacket(make([]byte, MaxPacketSize+1)))
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})
	_, err := rw.ReadPacket()
	require.Error(t, err)

	buf.Reset()
	buf.Write([]byte{4, 0, 0, 0, 1})
	_, err = rw.ReadPacket()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestSerialConfig(t *testing.T) {
	conf, err := SerialConfig("serial:///dev/ttyUSB0?baud=9600&timeout=100ms")
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB0", conf.Name)
	require.Equal(t, 9600, conf.Baud)
	require.Equal(t, 100*time.Millisecond, conf.ReadTimeout)

	conf, err = SerialConfig("serial://COM3")
	require.NoError(t, err)
	require.Equal(t, "COM3", conf.Name)
	require.Equal(t, DefaultBaud, conf.Baud)

	for _, bad := range []string{"tcp://host", "serial://", "serial:///dev/x?baud=abc", "serial:///dev/x?timeout=1"} {
		_, err = SerialConfig(bad)
		require.Error(t, err, bad)
	}
}

func TestConnectorOverStream(t *testing.T) {
	boardEnd, hostEnd := net.Pipe()
	ref := l1.BoardRef{Type: "motor", ID: "s0"}
	reg, err := NewRegistrar(func() (comm.PacketReadWriter, error) { return New(boardEnd), nil })
	require.NoError(t, err)
	connector := &Connector{
		Ref:  ref,
		Open: func() (comm.PacketReadWriter, error) { return New(hostEnd), nil },
	}

	boards, err := connector.Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, []l1.BoardInfo{{Ref: ref}}, boards)
	_, err = connector.Connect(context.Background(), l1.BoardRef{Type: "motor", ID: "other"})
	require.Error(t, err)

	conn, err := connector.Connect(context.Background(), ref)
	require.NoError(t, err)

	boardLoop := fx.NewLoop()
	boardLoop.Interval = 10 * time.Millisecond
	boardLoop.Add(reg, &comm.UnsupportedCommands{})
	hostLoop := fx.NewLoop()
	hostLoop.Interval = 10 * time.Millisecond
	hostLoop.Add(conn.(fx.LoopAdder))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go boardLoop.Run(ctx)
	go hostLoop.Run(ctx)

	_, err = l1.Wait(ctx, conn.DoCommand(&msgs.MotorStatusQuery{}), time.Second)
	require.Error(t, err)
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), err.Error())
}

func TestNewConnectorRejectsBadURL(t *testing.T) {
	_, err := NewConnector("serial://", l1.BoardRef{})
	require.Error(t, err)
	c, err := NewConnector("serial:///dev/ttyS0", l1.BoardRef{})
	require.NoError(t, err)
	boards, err := c.Discover(context.Background())
	require.NoError(t, err)
	require.Empty(t, boards)
}
