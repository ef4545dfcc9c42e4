package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm/websocket"
)

func TestNewEnv(t *testing.T) {
	conf := NewConfig()
	conf.Info.Ref = l1.BoardRef{}
	_, err := conf.NewEnv()
	require.Error(t, err)

	conf.Info.Ref = l1.BoardRef{Type: "motor", ID: "t0"}
	conf.MQTTBrokerURL = ""
	_, err = conf.NewEnv()
	require.Error(t, err)

	conf.WebsocketListen = "127.0.0.1:0"
	e, err := conf.NewEnv()
	require.NoError(t, err)
	require.Equal(t, []string{"ws://127.0.0.1:0"}, e.RegistryURLs)
	require.Len(t, e.Registrar.Registrars, 1)
	require.IsType(t, &websocket.Server{}, e.Registrar.Registrars[0])

	conf.SerialURL = "serial://"
	_, err = conf.NewEnv()
	require.Error(t, err)
}
