// Package hal defines the peripherals the motor controller core programs
// against. Implementations map these onto real registers or a simulation.
package hal

// IRQ identifies an interrupt source.
type IRQ int

// Interrupt sources, in descending hardware priority.
const (
	// IRQEdge fires on a level change of the protocol input pin.
	IRQEdge IRQ = iota
	// IRQTimerTick fires on the overflow of the tick timer.
	IRQTimerTick
	// IRQConversion fires when an analog conversion completes.
	IRQConversion

	NumIRQs
)

// String implements fmt.Stringer.
func (q IRQ) String() string {
	switch q {
	case IRQEdge:
		return "edge"
	case IRQTimerTick:
		return "tick"
	case IRQConversion:
		return "conversion"
	}
	return "unknown"
}

// Handler is an interrupt service routine.
type Handler func()

// InterruptState is the mask state saved by Disable.
type InterruptState uintptr

// Interrupts is the interrupt controller.
type Interrupts interface {
	// Attach installs the service routine for an interrupt source.
	Attach(IRQ, Handler)
	// Enable unmasks interrupts globally.
	Enable()
	// Disable masks all interrupts and returns the previous state.
	Disable() InterruptState
	// Restore restores the state returned by Disable.
	Restore(InterruptState)
}

// Masked runs fn with interrupts masked.
func Masked(irq Interrupts, fn func()) {
	state := irq.Disable()
	defer irq.Restore(state)
	fn()
}

// CountMode selects how a timer counts.
type CountMode int

// Count modes.
const (
	CountUpEdgeAligned CountMode = iota
	CountCenterAligned
)

// Polarity selects the active level of an output compare channel.
type Polarity int

// Output polarities.
const (
	ActiveHigh Polarity = iota
	// ActiveLow inverts the output: the pin is driven while the
	// counter is below the compare value.
	ActiveLow
)

// PWMConfig configures a PWM timer with a single output compare channel.
type PWMConfig struct {
	Period            uint16
	Mode              CountMode
	Polarity          Polarity
	OverflowInterrupt bool
}

// DutyRegister is the 16-bit compare value of an output channel,
// accessed as a high/low byte pair.
type DutyRegister interface {
	Bytes() (hi, lo byte)
	SetBytes(hi, lo byte)
}

// Duty reads the register as a 16-bit value.
func Duty(r DutyRegister) uint16 {
	hi, lo := r.Bytes()
	return uint16(hi)<<8 | uint16(lo)
}

// SetDuty writes a 16-bit value to the register.
func SetDuty(r DutyRegister, v uint16) {
	r.SetBytes(byte(v>>8), byte(v))
}

// PWMTimer is a hardware timer driving one PWM output.
type PWMTimer interface {
	// Configure programs the timer. It must be called before Start.
	Configure(PWMConfig) error
	// Compare returns the duty register of the output channel.
	Compare() DutyRegister
	// Start enables the counter and the output.
	Start()
}

// ADCChannel selects an analog input.
type ADCChannel uint8

// ADC is a single-shot analog converter raising IRQConversion on completion.
type ADC interface {
	// PowerUp powers the converter.
	PowerUp()
	// Select chooses the channel of the next conversion.
	Select(ADCChannel)
	// Start starts a one-shot conversion on the selected channel.
	Start()
	// Result returns the 8 most significant bits of the last conversion.
	Result() byte
}

// EdgeSense selects which transitions raise IRQEdge.
type EdgeSense int

// Edge sensitivity.
const (
	EdgeNone EdgeSense = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// EdgeInput is a digital input raising IRQEdge on transitions.
type EdgeInput interface {
	Sense(EdgeSense)
	Level() bool
}

// Board gives access to the peripherals of the controller.
type Board interface {
	// SystemClock is the timer clock frequency in Hz.
	SystemClock() uint32
	// PWM returns the timer of a PWM output, n counts from 0.
	PWM(n int) PWMTimer
	ADC() ADC
	EdgeInput() EdgeInput
	Interrupts() Interrupts
}
