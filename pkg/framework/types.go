package framework

import (
	"context"
	"time"
)

// Named is implemented by components with a name.
type Named interface {
	Name() string
}

// Runnable is a background worker bound to a context.
type Runnable interface {
	Run(context.Context) error
}

// RunnableFunc is the func form of Runnable.
type RunnableFunc func(context.Context) error

// Run implements Runnable.
func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Message is anything posted to a Loop for controllers to consume.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// Controller runs once per loop iteration at its priority level.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// TimeSource provides the time of an iteration.
type TimeSource interface {
	Time() time.Time
}

// ControlContext is handed to each Controller during an iteration.
type ControlContext interface {
	TimeSource
	Context() context.Context
	// WokenUp reports whether the iteration was started by TriggerNext
	// instead of a tick. Periodic work should skip such iterations.
	WokenUp() bool
	PriorityLevel() int
	// Messages holds the messages posted before the iteration started.
	Messages() MessageStore
	// PostRun installs one-shot hooks after the controllers of the
	// current level. Hooks installed from a hook run next iteration.
	PostRun(hooks ...Controller)

	LoopControl
}

// PriorityLevels is the number of priority levels, lower runs first.
const PriorityLevels int = 16

// Priority levels used by the control stack.
const (
	PrLvSense    int = 4
	PrLvControl  int = 8
	PrLvActuate  int = 12
	PrLvIdle     int = PriorityLevels - 1
	PrLvPostProc int = PrLvIdle - 1
)

// LoopControl is the access to a running Loop.
type LoopControl interface {
	// PreRunAt installs one-shot hooks before the controllers of a level.
	PreRunAt(priorityLevel int, controllers ...Controller)
	// PostRunAt installs one-shot hooks after the controllers of a level.
	PostRunAt(priorityLevel int, controllers ...Controller)
	PostMessage(Message)
	// TriggerNext requests an unscheduled iteration right after the
	// current one.
	TriggerNext()
}

// MessageStore gives controllers access to pending messages.
type MessageStore interface {
	ProcessMessages(MessageProcessor)
}

// MessageProcessor is called for each pending message.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext is the state of a single message visit.
type MessageProcessingContext interface {
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
	// StopProcessing leaves the remaining messages untouched.
	StopProcessing()
}
