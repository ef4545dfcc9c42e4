package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

// BoardConn is the supervisor side of a Pipe. It matches replies to
// commands by sequence number and expires commands left unanswered.
type BoardConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	lock     sync.Mutex
}

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// Init initializes BoardConn with defaults.
func (c *BoardConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements l1.BoardConn.
func (c *BoardConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.result <- l1.Result{Err: err}
		close(f.result)
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for replies.
func (c *BoardConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// AddToLoop implements LoopAdder.
func (c *BoardConn) AddToLoop(l *fx.Loop) {
	l.Add(&c.pipe)
	l.AddController(fx.PrLvIdle, fx.ControlFunc(c.purgeExpired))
}

func (c *BoardConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		loopCtl := fx.LoopCtlFrom(ctx)
		loopCtl.PostMessage(msg)
		loopCtl.TriggerNext()
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.result <- result
	close(f.result)
	return nil
}

func (c *BoardConn) purgeExpired(cc fx.ControlContext) error {
	c.expire(time.Now())
	return nil
}

func (c *BoardConn) expire(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.result <- l1.Result{Err: context.DeadlineExceeded}
		close(f.result)
	}
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (c *commandFuture) ResultChan() <-chan l1.Result {
	return c.result
}
