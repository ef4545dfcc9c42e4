// Package controller sets up the board side: its identity and the
// registrars it is reachable through.
package controller

import (
	"flag"
	"fmt"
	"log"
	"os"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
	"github.com/robotalks/motorctl/pkg/l1/comm/mqtt"
	"github.com/robotalks/motorctl/pkg/l1/comm/stream"
	"github.com/robotalks/motorctl/pkg/l1/comm/websocket"
	"github.com/robotalks/motorctl/pkg/l1/env"
)

// Config provides common options to setup an env for boards.
type Config struct {
	Info l1.BoardInfo

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// SerialURL exposes the board on a serial port.
	// e.g. serial:///dev/ttyUSB0?baud=115200
	SerialURL string
	// WebsocketListen exposes the board on host:port.
	WebsocketListen string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/motor/",
}

func init() {
	defaultConfig.MQTTBrokerURL = env.Getenv(os.LookupEnv, "MOTOR_MQTT_URL", defaultConfig.MQTTBrokerURL)
	defaultConfig.Info.Ref.ID = env.Getenv(os.LookupEnv, "MOTOR_ID", env.MachineID())
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Board type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Board ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.SerialURL, "serial", defaultConfig.SerialURL, "Serial port URL")
	flag.StringVar(&defaultConfig.WebsocketListen, "ws-listen", defaultConfig.WebsocketListen, "Websocket listen address")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetBoardType should be called in init with basic info about the board.
func SetBoardType(typ string, meta l1.BoardMeta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// Env is the env for boards.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *comm.RegistrarMux
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("board type and id must be specified")
	}
	env := &Env{
		Config:    c,
		Registrar: &comm.RegistrarMux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		env.Registrar.Add(reg)
		env.RegistryURLs = append(env.RegistryURLs, c.MQTTBrokerURL)
	}
	if c.SerialURL != "" {
		reg, err := stream.NewRegistrar(stream.SerialOpener(c.SerialURL))
		if err != nil {
			return nil, fmt.Errorf("create serial registrar error: %v", err)
		}
		env.Registrar.Add(reg)
		env.RegistryURLs = append(env.RegistryURLs, c.SerialURL)
	}
	if c.WebsocketListen != "" {
		env.Registrar.Add(websocket.NewServer(c.WebsocketListen, c.Info))
		env.RegistryURLs = append(env.RegistryURLs, "ws://"+c.WebsocketListen)
	}
	if len(env.Registrar.Registrars) == 0 {
		return nil, fmt.Errorf("at least one registrar is required")
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// AddToLoop adds controllers/runners to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Registrar)
	loop.Add(&comm.UnsupportedCommands{})
}
