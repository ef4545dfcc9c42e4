// Package all registers all shell commands.
package all

import (
	// motor board commands
	_ "github.com/robotalks/motorctl/pkg/cli/cmds/motor"
)
