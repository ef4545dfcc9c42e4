package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
)

// Connector implements l1.Connector for a single board serving
// websocket at ws://host:port.
type Connector struct {
	baseURL *url.URL
}

// NewConnector creates a Connector.
func NewConnector(boardURL string) (*Connector, error) {
	u, err := url.Parse(boardURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("not a websocket URL: %q", boardURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return &Connector{baseURL: u}, nil
}

func (c *Connector) url(scheme, path string) string {
	u := *c.baseURL
	if scheme != "" {
		u.Scheme = scheme
	}
	u.Path += path
	return u.String()
}

// Discover implements l1.Connector.
func (c *Connector) Discover(ctx context.Context) ([]l1.BoardInfo, error) {
	scheme := "http"
	if c.baseURL.Scheme == "wss" {
		scheme = "https"
	}
	req, err := http.NewRequest(http.MethodGet, c.url(scheme, PathMeta), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: %s", resp.Status)
	}
	var meta Meta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	return []l1.BoardInfo{{Ref: l1.BoardRef{Type: meta.Type, ID: meta.ID}, Meta: meta.Meta}}, nil
}

// Connect implements l1.Connector. The board serves a single ref, so
// ref is only checked for being valid.
func (c *Connector) Connect(ctx context.Context, ref l1.BoardRef) (l1.BoardConn, error) {
	if !ref.IsValid() {
		return nil, fmt.Errorf("invalid board ref %q", ref.Name())
	}
	origin := c.url("http", "")
	ws, err := websocket.Dial(c.url("", PathL1), "", origin)
	if err != nil {
		return nil, err
	}
	ws.PayloadType = websocket.BinaryFrame
	conn := &comm.BoardConn{}
	conn.Init(New(ws))
	return conn, nil
}
