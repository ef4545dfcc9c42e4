// Package env provides defaults shared by the board and supervisor envs.
package env

import (
	"github.com/denisbrodbeck/machineid"
)

// AppID salts the machine ID so the board ID does not leak it.
const AppID = "motorctl"

// MachineID retrieves the unique ID identifying the machine, hashed with
// AppID. It returns an empty string if the ID is unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		return ""
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// Getenv returns the value of the environment variable if set, or def.
func Getenv(lookup func(string) (string, bool), name, def string) string {
	if val, ok := lookup(name); ok && val != "" {
		return val
	}
	return def
}
