package websocket

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
)

// Paths served by Server.
const (
	PathMeta = "/meta"
	PathL1   = "/l1"
)

// Server is a Registrar accepting supervisors over websocket. Every
// connection gets its own pipe; events are sent to all of them.
type Server struct {
	Addr string
	Info l1.BoardInfo

	lock     sync.Mutex
	conns    map[*comm.Registrar]struct{}
	listener net.Listener
	ready    chan struct{}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, info l1.BoardInfo) *Server {
	return &Server{
		Addr:  addr,
		Info:  info,
		conns: make(map[*comm.Registrar]struct{}),
		ready: make(chan struct{}),
	}
}

// SendEvent implements l1.Registrar.
func (s *Server) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	s.lock.Lock()
	defer s.lock.Unlock()
	for reg := range s.conns {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// Connections returns the number of connected supervisors.
func (s *Server) Connections() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.conns)
}

// ListenAddr waits until listening and returns the bound address.
func (s *Server) ListenAddr(ctx context.Context) (net.Addr, error) {
	select {
	case <-s.ready:
		return s.listener.Addr(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(l *fx.Loop) {
	l.AddRunnable(s)
}

// Run implements Runnable. ctx must come from the Loop so received
// commands are posted to it.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	close(s.ready)
	glog.Infof("websocket: listening on %s", ln.Addr())

	mux := http.NewServeMux()
	mux.HandleFunc(PathMeta, s.serveMeta)
	mux.Handle(PathL1, websocket.Handler(func(conn *websocket.Conn) {
		s.serveConn(ctx, conn)
	}))
	srv := &http.Server{Handler: mux}
	return fx.RunWithContextCancel(ctx, func() { srv.Close() }, func() error {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func (s *Server) serveMeta(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Meta{Type: s.Info.Ref.Type, ID: s.Info.Ref.ID, Meta: s.Info.Meta})
}

func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	conn.PayloadType = websocket.BinaryFrame
	reg := &comm.Registrar{}
	reg.Init(New(conn))
	s.lock.Lock()
	s.conns[reg] = struct{}{}
	s.lock.Unlock()
	glog.V(1).Infof("websocket: supervisor %s connected", conn.Request().RemoteAddr)
	err := reg.Run(ctx)
	s.lock.Lock()
	delete(s.conns, reg)
	s.lock.Unlock()
	glog.V(1).Infof("websocket: supervisor %s disconnected: %v", conn.Request().RemoteAddr, err)
}

// Meta is the document served on PathMeta.
type Meta struct {
	Type string       `json:"type"`
	ID   string       `json:"id"`
	Meta l1.BoardMeta `json:"meta"`
}
