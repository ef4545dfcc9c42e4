// Package connector sets up the supervisor side: which board to connect
// and through which registry.
package connector

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm/mqtt"
	"github.com/robotalks/motorctl/pkg/l1/comm/stream"
	"github.com/robotalks/motorctl/pkg/l1/comm/websocket"
	"github.com/robotalks/motorctl/pkg/l1/env"
)

// Config provides common options to setup Connectors.
type Config struct {
	Ref l1.BoardRef

	// RegistryURL specifies the URL of board registry.
	// e.g. mqtt://host:port/topic-prefix, ws://host:port,
	// serial:///dev/ttyUSB0?baud=115200
	RegistryURL string
}

// DefaultBoardType is the board type a supervisor looks for.
const DefaultBoardType = "motor"

var defaultConfig = Config{
	Ref:         l1.BoardRef{Type: DefaultBoardType},
	RegistryURL: "mqtt://localhost:1883/motor/",
}

func init() {
	defaultConfig.Ref.Type = env.Getenv(os.LookupEnv, "MOTOR_TYPE", defaultConfig.Ref.Type)
	defaultConfig.Ref.ID = env.Getenv(os.LookupEnv, "MOTOR_ID", defaultConfig.Ref.ID)
	defaultConfig.RegistryURL = env.Getenv(os.LookupEnv, "MOTOR_REGISTRY_URL", defaultConfig.RegistryURL)
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "board-type", defaultConfig.Ref.Type, "Board type to connect.")
	flag.StringVar(&defaultConfig.Ref.ID, "board-id", defaultConfig.Ref.ID, "Board ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "board-reg", defaultConfig.RegistryURL, "Board Registry URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector creates a Connector using current config.
func (c *Config) NewConnector() (l1.Connector, error) {
	parsedURL, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt", "tcp", "ssl", "tls":
		return mqtt.NewConnector(c.RegistryURL)
	case "ws", "wss":
		return websocket.NewConnector(c.RegistryURL)
	case "serial":
		return stream.NewConnector(c.RegistryURL, c.Ref)
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", parsedURL.Scheme)
	}
}

// MustNewConnector creates a Connector and fails on error.
func (c *Config) MustNewConnector() l1.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect directly connects to the board.
func (c *Config) Connect(ctx context.Context) (l1.BoardConn, error) {
	if !c.Ref.IsValid() {
		return nil, fmt.Errorf("board type and id must be specified")
	}
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	return connector.Connect(ctx, c.Ref)
}

// MustConnect connects to the board or fails.
func (c *Config) MustConnect(ctx context.Context) l1.BoardConn {
	conn, err := c.Connect(ctx)
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}
