// Package comm carries L1 messages over packet transports.
package comm

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

// PacketReader reads whole packets.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes whole packets.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes whole packets.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// PipeStats counts the traffic of a Pipe.
type PipeStats struct {
	Sent      uint64
	Received  uint64
	Malformed uint64
}

// Pipe exchanges Typed messages over a PacketReadWriter.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    msgs.TypedMsgHandler

	sendLock  sync.Mutex
	sent      atomic.Uint64
	received  atomic.Uint64
	malformed atomic.Uint64
}

// NewPipe creates a Pipe with given PacketReadWriter.
func NewPipe(rw PacketReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// SendCommandMsg sends a command or a reply with the sequence number.
func (p *Pipe) SendCommandMsg(msg fx.Message, seq uint32) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !typed.IsCommand() {
		panic("message is not a command")
	}
	typed.Sequence = seq
	return p.SendTyped(typed)
}

// SendEventMsg sends a message which must be an event.
func (p *Pipe) SendEventMsg(msg fx.Message) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !typed.IsEvent() {
		panic("message is not an event")
	}
	return p.SendTyped(typed)
}

// SendTyped sends a Typed message.
func (p *Pipe) SendTyped(typed *msgs.Typed) error {
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	p.sendLock.Lock()
	err = p.ReadWriter.WritePacket(pkt)
	p.sendLock.Unlock()
	if err == nil {
		p.sent.Add(1)
	}
	return err
}

// Stats returns the traffic counters.
func (p *Pipe) Stats() PipeStats {
	return PipeStats{
		Sent:      p.sent.Load(),
		Received:  p.received.Load(),
		Malformed: p.malformed.Load(),
	}
}

// Run implements Runnable. The transport is closed when ctx is done.
func (p *Pipe) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, p, func() error {
		return p.receive(ctx)
	})
}

func (p *Pipe) receive(ctx context.Context) error {
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err != nil {
			return err
		}
		p.received.Add(1)
		typed, err := msgs.DecodeTyped(pkt)
		if err != nil {
			p.malformed.Add(1)
			glog.Warningf("drop malformed packet (%d bytes): %v", len(pkt), err)
			continue
		}
		msg, err := typed.Decode()
		if err != nil {
			p.malformed.Add(1)
			// a command always gets a reply, anything else is dropped.
			if typed.IsCommand() && !typed.IsReply() {
				if err = p.SendCommandMsg(msgs.NewCommandErr(err), typed.Sequence); err != nil {
					return err
				}
			}
			continue
		}
		if h := p.Handler; h != nil {
			if err = h.HandleTypedMsg(ctx, msg, typed); err != nil {
				return err
			}
		}
	}
}

// Close implements Closer.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	if adder, ok := p.ReadWriter.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := p.ReadWriter.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddRunnable(p)
}
