package motor

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

// SetpointPolicy selects how a validated frame is made visible to the
// control loop.
type SetpointPolicy string

// Setpoint policies.
const (
	// PolicyTorn copies byte by byte with no exclusion. A control
	// iteration may observe a mix of old and new bytes.
	PolicyTorn SetpointPolicy = "torn"
	// PolicySwap publishes an immutable copy through an atomic pointer.
	PolicySwap SetpointPolicy = "swap"
	// PolicyMasked copies byte by byte; the control loop reads with
	// interrupts masked.
	PolicyMasked SetpointPolicy = "masked"
)

// Config defines the regulator parameters.
type Config struct {
	// SystemClock is the timer clock (Hz).
	SystemClock uint32 `yaml:"system_clock"`
	// PWMFrequency is the switching frequency (Hz).
	PWMFrequency uint32 `yaml:"pwm_frequency"`
	// Channels lists the analog inputs in sample order:
	// voltage 1, voltage 2, current 1, current 2.
	Channels []int `yaml:"channels"`
	// HysteresisVoltage and HysteresisCurrent are the deadbands (raw counts).
	HysteresisVoltage int `yaml:"hysteresis_voltage"`
	HysteresisCurrent int `yaml:"hysteresis_current"`
	// ControlPeriod paces the control loop.
	ControlPeriod time.Duration `yaml:"control_period"`
	// DefaultVoltageLimit and DefaultCurrentLimit form the setpoint
	// in effect until a frame is received.
	DefaultVoltageLimit uint8 `yaml:"default_voltage_limit"`
	DefaultCurrentLimit uint8 `yaml:"default_current_limit"`
	// SetpointPolicy selects how frames are published.
	SetpointPolicy SetpointPolicy `yaml:"setpoint_policy"`
	// SampleTimeout re-arms a stalled sampler when no conversion
	// completed within it. 0 disables the watchdog.
	SampleTimeout time.Duration `yaml:"sample_timeout"`
}

// Defaults
const (
	DefaultSystemClock       uint32 = 16000000
	DefaultPWMFrequency      uint32 = 20000
	DefaultHysteresisCurrent        = 10 // ~280 mA
	DefaultHysteresisVoltage        = 20 // ~20 V
	DefaultControlPeriod            = 4 * time.Millisecond
)

var (
	// ErrPeriodRange indicates the PWM period does not fit the timer.
	ErrPeriodRange = errors.New("PWM period out of timer range")
	// ErrChannels indicates a malformed analog channel list.
	ErrChannels = errors.New("invalid analog channel list")
)

var defaultConfig = Config{
	SystemClock:         DefaultSystemClock,
	PWMFrequency:        DefaultPWMFrequency,
	Channels:            []int{3, 2, 5, 6},
	HysteresisVoltage:   DefaultHysteresisVoltage,
	HysteresisCurrent:   DefaultHysteresisCurrent,
	ControlPeriod:       DefaultControlPeriod,
	DefaultVoltageLimit: link.DefaultFrame.VoltageLimit(0),
	DefaultCurrentLimit: link.DefaultFrame.CurrentLimit(0),
	SetpointPolicy:      PolicySwap,
}

var configFile string

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "motor-config", configFile, "YAML file with regulator parameters, applied before flags.")
	flag.Var(uint32Value{&defaultConfig.SystemClock}, "system-clock", "Timer clock (Hz).")
	flag.Var(uint32Value{&defaultConfig.PWMFrequency}, "pwm-freq", "PWM frequency (Hz).")
	flag.IntVar(&defaultConfig.HysteresisVoltage, "hyst-v", defaultConfig.HysteresisVoltage, "Voltage deadband (ADC counts).")
	flag.IntVar(&defaultConfig.HysteresisCurrent, "hyst-i", defaultConfig.HysteresisCurrent, "Current deadband (ADC counts).")
	flag.DurationVar(&defaultConfig.ControlPeriod, "control-period", defaultConfig.ControlPeriod, "Control loop period.")
	flag.Var((*policyValue)(&defaultConfig.SetpointPolicy), "setpoint-policy", "Setpoint publication: torn, swap or masked.")
	flag.DurationVar(&defaultConfig.SampleTimeout, "sample-timeout", defaultConfig.SampleTimeout, "Re-arm the sampler after this long without a conversion, 0 to disable.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	conf.Channels = append([]int(nil), defaultConfig.Channels...)
	return &conf
}

// LoadConfig creates a Config from defaults, the file given by
// -motor-config if any, and validates it. Flags explicitly set on the
// command line take precedence over the file.
func LoadConfig() (*Config, error) {
	conf := NewConfig()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			return nil, err
		}
		flag.Visit(func(f *flag.Flag) {
			conf.applyFlag(f.Name)
		})
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyFlag(name string) {
	switch name {
	case "system-clock":
		c.SystemClock = defaultConfig.SystemClock
	case "pwm-freq":
		c.PWMFrequency = defaultConfig.PWMFrequency
	case "hyst-v":
		c.HysteresisVoltage = defaultConfig.HysteresisVoltage
	case "hyst-i":
		c.HysteresisCurrent = defaultConfig.HysteresisCurrent
	case "control-period":
		c.ControlPeriod = defaultConfig.ControlPeriod
	case "setpoint-policy":
		c.SetpointPolicy = defaultConfig.SetpointPolicy
	case "sample-timeout":
		c.SampleTimeout = defaultConfig.SampleTimeout
	}
}

// Period returns the timer period, PERIOD = clock / frequency.
func (c *Config) Period() (uint16, error) {
	if c.PWMFrequency == 0 {
		return 0, fmt.Errorf("%w: zero PWM frequency", ErrPeriodRange)
	}
	period := c.SystemClock / c.PWMFrequency
	if period == 0 || period > 0xffff {
		return 0, fmt.Errorf("%w: %d", ErrPeriodRange, period)
	}
	return uint16(period), nil
}

// ADCChannels converts the channel list.
func (c *Config) ADCChannels() []hal.ADCChannel {
	chs := make([]hal.ADCChannel, len(c.Channels))
	for n, ch := range c.Channels {
		chs[n] = hal.ADCChannel(ch)
	}
	return chs
}

// InitialSetpoint returns the setpoint in effect before any frame.
func (c *Config) InitialSetpoint() link.Frame {
	var f link.Frame
	for ch := 0; ch < NumChannels; ch++ {
		f[link.OffsetVoltageLimit+ch] = c.DefaultVoltageLimit
		f[link.OffsetCurrentLimit+ch] = c.DefaultCurrentLimit
	}
	return f
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.Period(); err != nil {
		return err
	}
	if len(c.Channels) != NumSamples {
		return fmt.Errorf("%w: want %d channels, got %d", ErrChannels, NumSamples, len(c.Channels))
	}
	seen := make(map[int]bool)
	for _, ch := range c.Channels {
		if ch < 0 || ch > 0xff {
			return fmt.Errorf("%w: channel %d out of range", ErrChannels, ch)
		}
		if seen[ch] {
			return fmt.Errorf("%w: channel %d listed twice", ErrChannels, ch)
		}
		seen[ch] = true
	}
	if c.HysteresisVoltage < 0 || c.HysteresisCurrent < 0 {
		return fmt.Errorf("negative hysteresis")
	}
	if c.ControlPeriod <= 0 {
		return fmt.Errorf("control period must be positive")
	}
	if c.SampleTimeout < 0 {
		return fmt.Errorf("negative sample timeout")
	}
	switch c.SetpointPolicy {
	case PolicyTorn, PolicySwap, PolicyMasked:
	default:
		return fmt.Errorf("unknown setpoint policy %q", c.SetpointPolicy)
	}
	return nil
}

type uint32Value struct {
	p *uint32
}

func (v uint32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return fmt.Sprint(*v.p)
}

func (v uint32Value) Set(s string) error {
	var n uint32
	if _, err := fmt.Sscan(s, &n); err != nil {
		return err
	}
	*v.p = n
	return nil
}

type policyValue SetpointPolicy

func (v *policyValue) String() string { return string(*v) }

func (v *policyValue) Set(s string) error {
	switch p := SetpointPolicy(s); p {
	case PolicyTorn, PolicySwap, PolicyMasked:
		*v = policyValue(p)
		return nil
	}
	return fmt.Errorf("unknown policy %q", s)
}
