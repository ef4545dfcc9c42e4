package comm

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

// Registrar is the board side of a Pipe. Received commands and events
// are posted to the Loop which runs the pipe.
type Registrar struct {
	pipe Pipe
}

// Init initializes the Registrar with defaults.
func (r *Registrar) Init(rw PacketReadWriter) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	switch {
	case typed.IsReply():
		glog.V(2).Infof("ignore reply %x (seq %d)", typed.TypeId, typed.Sequence)
		return nil
	case typed.IsCommand():
		loopCtl.PostMessage(&l1.CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}})
	default:
		loopCtl.PostMessage(msg)
	}
	loopCtl.TriggerNext()
	return nil
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// Stats returns the traffic counters.
func (r *Registrar) Stats() PipeStats {
	return r.pipe.Stats()
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.pipe)
}

// Run runs the pipe outside of AddToLoop, for transports accepting
// connections after the Loop started. ctx must carry the LoopCtl.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

// RegistrarMux registers a board with multiple Registrars.
type RegistrarMux struct {
	Registrars []l1.Registrar
}

// SendEvent implements Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, reg := range r.Registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (r *RegistrarMux) AddToLoop(l *fx.Loop) {
	for _, reg := range r.Registrars {
		if adder, ok := reg.(fx.LoopAdder); ok {
			l.Add(adder)
		}
	}
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...l1.Registrar) {
	r.Registrars = append(r.Registrars, regs...)
}

// UnsupportedCommands replies left-over commands as unsupported.
type UnsupportedCommands struct {
}

// Control implements Controller.
func (c *UnsupportedCommands) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg); ok {
			mctx.MessageTaken()
			if err := cmdMsg.Command.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand)); err != nil {
				glog.Errorf("reply unsupported command: %v", err)
			}
		}
	}))
	return nil
}

// AddToLoop implements LoopAdder.
func (c *UnsupportedCommands) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvIdle, c)
}
