package env

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetenv(t *testing.T) {
	vars := map[string]string{"A": "x", "EMPTY": ""}
	lookup := func(name string) (string, bool) {
		val, ok := vars[name]
		return val, ok
	}
	require.Equal(t, "x", Getenv(lookup, "A", "d"))
	require.Equal(t, "d", Getenv(lookup, "EMPTY", "d"))
	require.Equal(t, "d", Getenv(lookup, "MISSING", "d"))
}

func TestMachineID(t *testing.T) {
	require.True(t, len(MachineID()) <= 12)
}
