package sh

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

func TestFormatResult(t *testing.T) {
	s := &Shell{}
	out, err := s.FormatResult(msgs.NewCommandOK())
	require.NoError(t, err)
	require.Equal(t, "OK", out)

	out, err = s.FormatResult(&msgs.MotorCaps{Period: 800})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "MotorCaps "), out)
	require.Contains(t, out, "period:800")

	s.OutputJSON = true
	out, err = s.FormatResult(&msgs.MotorCaps{Period: 800})
	require.NoError(t, err)
	require.Equal(t, `{"period":800}`, out)

	_, err = s.FormatResult(&l1.CommandMsg{})
	require.Error(t, err)
}

func TestFormatters(t *testing.T) {
	saved := formatters
	defer func() { formatters = saved }()
	AddFormatters(func(msg fx.Message) (string, bool) {
		if _, ok := msg.(*msgs.MotorCaps); ok {
			return "caps", true
		}
		return "", false
	})
	s := &Shell{}
	out, err := s.FormatResult(&msgs.MotorCaps{})
	require.NoError(t, err)
	require.Equal(t, "caps", out)
}

func TestFormatInfo(t *testing.T) {
	info := l1.BoardInfo{Ref: l1.BoardRef{Type: "motor", ID: "a"}}
	require.Equal(t, "motor/a", FormatInfo(info))
	info.Meta.Description = "bench"
	require.Equal(t, "motor/a: bench", FormatInfo(info))
}
