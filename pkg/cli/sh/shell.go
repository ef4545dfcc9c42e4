package sh

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	env "github.com/robotalks/motorctl/pkg/l1/env/connector"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *env.Config
	Loop   *ConnLoop
}

// ConnLoop is a running loop with a board connection.
type ConnLoop struct {
	Ctx    context.Context
	Cancel func()
	Ref    l1.BoardRef
	Loop   *fx.Loop
	Conn   l1.BoardConn
}

// CommandTimeout bounds the wait for a command result.
var CommandTimeout = time.Second

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Loop == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// FormatInfo prints BoardInfo into friendly string for display.
func FormatInfo(info l1.BoardInfo) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s", info.Ref.Name())
	if info.Meta.Description != "" {
		fmt.Fprintf(&w, ": %s", info.Meta.Description)
	}
	return w.String()
}

// DoCommand runs a command and waits for result.
func DoCommand(c *ishell.Context, msg fx.Message) (err error) {
	s := ShellFrom(c)
	if s.Loop == nil {
		err = fmt.Errorf("not connected")
		c.Err(err)
		return
	}
	res, err := l1.Wait(s.Loop.Ctx, s.Loop.Conn.DoCommand(msg), CommandTimeout)
	if err == context.DeadlineExceeded {
		err = fmt.Errorf("command timeout")
	}
	if err != nil {
		c.Err(err)
		return err
	}
	out, err := s.FormatResult(res)
	if err != nil {
		c.Err(err)
		return err
	}
	c.Println(out)
	return nil
}

// Formatter renders a result message for display. It returns false
// to fall back to the default format.
type Formatter func(fx.Message) (string, bool)

var formatters []Formatter

// AddFormatters is used by other commands providers during init func.
func AddFormatters(f ...Formatter) {
	formatters = append(formatters, f...)
}

// FormatResult renders a command result as JSON or text.
func (s *Shell) FormatResult(msg fx.Message) (string, error) {
	serializable, ok := msg.(msgs.SerializableMessage)
	if !ok {
		return "", fmt.Errorf("unexpected result %T", msg)
	}
	if s.OutputJSON {
		out, err := json.Marshal(serializable.Serializable())
		return string(out), err
	}
	if _, ok := msg.(*msgs.CommandOK); ok {
		return "OK", nil
	}
	for _, f := range formatters {
		if out, ok := f(msg); ok {
			return out, nil
		}
	}
	return fmt.Sprintf("%s %s",
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
		serializable.Serializable().String()), nil
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DiscoverBoards discovers boards.
func (s *Shell) DiscoverBoards(filter func(l1.BoardInfo) bool) (l1.Connector, []l1.BoardInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, nil, err
	}
	infoList, err := connector.Discover(context.TODO())
	if err != nil {
		return connector, nil, err
	}
	if filter != nil {
		items := make([]l1.BoardInfo, 0, len(infoList))
		for _, info := range infoList {
			if filter(info) {
				items = append(items, info)
			}
		}
		infoList = items
	}
	return connector, infoList, nil
}

// SelectBoard discovers boards and asks for a choice.
func (s *Shell) SelectBoard(filter func(l1.BoardInfo) bool) (l1.Connector, *l1.BoardInfo, error) {
	connector, infoList, err := s.DiscoverBoards(filter)
	if err != nil {
		return nil, nil, err
	}
	if len(infoList) == 0 {
		return connector, nil, nil
	}
	var index int
	if len(infoList) > 1 {
		if !s.Interactive {
			return nil, nil, fmt.Errorf("more than 1 boards discovered in non-interactive mode")
		}
		items := make([]string, len(infoList))
		for n, info := range infoList {
			items[n] = info.Ref.Name()
			if info.Meta.Description != "" {
				items[n] += ": " + info.Meta.Description
			}
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}

	return connector, &infoList[index], nil
}

// Connect connects board with ref.
func (s *Shell) Connect(ref l1.BoardRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	connLoop := &ConnLoop{Ref: ref}
	connLoop.Ctx, connLoop.Cancel = context.WithCancel(context.Background())
	if connLoop.Conn, err = connector.Connect(connLoop.Ctx, ref); err != nil {
		return err
	}
	connLoop.Loop = fx.NewLoop()
	if adder, ok := connLoop.Conn.(fx.LoopAdder); ok {
		connLoop.Loop.Add(adder)
	}
	if s.Loop != nil {
		s.Loop.Cancel()
	}
	s.Loop = connLoop
	go connLoop.Loop.Run(connLoop.Ctx)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", ref.Name()))
	return nil
}

// Disconnect disconnects current board.
func (s *Shell) Disconnect() {
	if s.Loop != nil {
		s.Loop.Cancel()
		s.Loop = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Ref.Name())
		}
		if err := s.Connect(s.Config.Ref); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Ref.Name(), err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// DiscoverCmd discovers boards.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			_, infoList, err := s.DiscoverBoards(nil)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if len(infoList) == 0 {
					// in case infoList is nil, make it empty slice.
					infoList = []l1.BoardInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No boards found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a board.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "TYPE ID",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var ref l1.BoardRef
			if len(c.Args) >= 2 {
				ref.Type, ref.ID = c.Args[0], c.Args[1]
			} else {
				var filter func(l1.BoardInfo) bool
				if len(c.Args) == 1 {
					filter = func(info l1.BoardInfo) bool {
						return info.Ref.Type == c.Args[0]
					}
				}
				_, info, err := s.SelectBoard(filter)
				if err != nil {
					c.Err(err)
					return
				}
				if info == nil {
					c.Err(fmt.Errorf("no board discovered"))
					return
				}
				ref = info.Ref
			}
			if err := s.Connect(ref); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd disconnects current board.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
