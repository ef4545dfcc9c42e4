// Package l1 defines how a motor board (L1 controller) exchanges
// commands and events with supervisors (L2).
package l1

import (
	"context"
	"errors"
	"time"

	fx "github.com/robotalks/motorctl/pkg/framework"
)

// Registrar registers a board to a registry.
// It integrates with framework and helps the board to easily process
// messages.
type Registrar interface {
	// SendEvent sends an event to L2.
	SendEvent(context.Context, fx.Message) error
}

// Command represents a received command to be processed.
type Command interface {
	Msg() fx.Message
	Done(fx.Message) error
}

// CommandMsg wraps a Command as a Message.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fx.Message { return &CommandMsg{} }

// BoardRef is a reference to a board.
type BoardRef struct {
	// Type is the board type.
	Type string
	// ID is unique ID of the board.
	ID string
}

// Name retrieves the name from ref.
func (r BoardRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates BoardRef is valid.
func (r BoardRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// BoardMeta provides metadata of a board.
type BoardMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// BoardInfo provides information of a board.
type BoardInfo struct {
	Ref  BoardRef
	Meta BoardMeta
}

// Connector is used by L2 components to connect to a board.
type Connector interface {
	// Discover enumerates registered boards.
	Discover(context.Context) ([]BoardInfo, error)
	// Connect connects to the specified board.
	Connect(context.Context, BoardRef) (BoardConn, error)
}

// BoardConn is the connection to a board.
type BoardConn interface {
	// DoCommand executes a command.
	DoCommand(fx.Message) CommandFuture
}

// Result represents result of a command.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}

// ErrNoResult indicates the future was closed without a result.
var ErrNoResult = errors.New("no result")

// Wait waits for the result of a command until timeout or ctx is done.
func Wait(ctx context.Context, f CommandFuture, timeout time.Duration) (fx.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res, ok := <-f.ResultChan():
		if !ok {
			return nil, ErrNoResult
		}
		return res.Msg, res.Err
	case <-timer.C:
		return nil, context.DeadlineExceeded
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
