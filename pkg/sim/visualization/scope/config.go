package scope

import (
	"flag"
	"io"
	"os"
	"time"
)

// Config represents configuration for scope.
type Config struct {
	// Output is a file path, "-" for stdout, empty to disable.
	Output string
	// Interval is the virtual time between two traces.
	Interval time.Duration
}

var defaultConfig = Config{
	Interval: 20 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Output, "scope-out", defaultConfig.Output, "Write JSON traces of the outputs to file, - for stdout")
	flag.DurationVar(&defaultConfig.Interval, "scope-interval", defaultConfig.Interval, "Virtual time between traces")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Enabled indicates an output is configured.
func (c *Config) Enabled() bool {
	return c.Output != ""
}

// NewAdapter creates adapter from config. The returned closer must be
// closed when done.
func (c *Config) NewAdapter() (*Adapter, io.Closer, error) {
	if c.Output == "-" {
		return NewAdapter(c, os.Stdout), stdoutCloser{}, nil
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, err
	}
	return NewAdapter(c, f), f, nil
}

type stdoutCloser struct{}

func (stdoutCloser) Close() error { return nil }
