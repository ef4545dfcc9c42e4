package stream

import (
	"context"
	"fmt"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
)

// OpenFunc opens the stream a Connector or Registrar runs on.
type OpenFunc func() (comm.PacketReadWriter, error)

// SerialOpener returns an OpenFunc for a serial:// URL.
func SerialOpener(serialURL string) OpenFunc {
	return func() (comm.PacketReadWriter, error) {
		return OpenSerial(serialURL)
	}
}

// Connector implements l1.Connector over a point-to-point stream. A
// stream reaches exactly one board, so Discover reports the configured
// ref without talking to the board.
type Connector struct {
	Ref  l1.BoardRef
	Open OpenFunc
}

// NewConnector creates a Connector for a serial:// URL.
func NewConnector(serialURL string, ref l1.BoardRef) (*Connector, error) {
	if _, err := SerialConfig(serialURL); err != nil {
		return nil, err
	}
	return &Connector{Ref: ref, Open: SerialOpener(serialURL)}, nil
}

// Discover implements l1.Connector.
func (c *Connector) Discover(ctx context.Context) ([]l1.BoardInfo, error) {
	if !c.Ref.IsValid() {
		return nil, nil
	}
	return []l1.BoardInfo{{Ref: c.Ref}}, nil
}

// Connect implements l1.Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.BoardRef) (l1.BoardConn, error) {
	if c.Ref.IsValid() && ref != c.Ref {
		return nil, fmt.Errorf("board %s not on this stream", ref.Name())
	}
	rw, err := c.Open()
	if err != nil {
		return nil, err
	}
	conn := &comm.BoardConn{}
	conn.Init(rw)
	return conn, nil
}

// Registrar implements l1.Registrar over a point-to-point stream.
type Registrar struct {
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar on an opened stream.
func NewRegistrar(open OpenFunc) (*Registrar, error) {
	rw, err := open()
	if err != nil {
		return nil, err
	}
	r := &Registrar{}
	r.registrar.Init(rw)
	return r, nil
}

// SendEvent implements l1.Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(l *fx.Loop) {
	l.Add(&r.registrar)
}
