package emulator

import (
	"github.com/sirupsen/logrus"
)

// State of the execution controller.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_STOPPED    = State(0) // stopped
	STATE_RUNNING    = State(1) // running
	STATE_TERMINATED = State(2) // terminated
)

// StopReason explains why execution stopped.
type StopReason int

//go:generate go tool stringer -linecomment -type=StopReason
const (
	STOP_NONE                   = StopReason(0) // none
	STOP_ENTRY                  = StopReason(1) // entry
	STOP_STEP                   = StopReason(2) // step
	STOP_STEP_OVER              = StopReason(3) // step over
	STOP_STEP_OUT               = StopReason(4) // step out
	STOP_BREAKPOINT             = StopReason(5) // breakpoint
	STOP_DATA_BREAKPOINT        = StopReason(6) // data breakpoint
	STOP_INSTRUCTION_BREAKPOINT = StopReason(7) // instruction breakpoint
	STOP_PAUSE                  = StopReason(8) // pause
)

// EventKind classifies an Event.
type EventKind int

//go:generate go tool stringer -linecomment -type=EventKind
const (
	EVENT_STOPPED              = EventKind(0) // stopped
	EVENT_TERMINATED           = EventKind(1) // terminated
	EVENT_BREAKPOINT_VALIDATED = EventKind(2) // breakpoint validated
)

// Event is a notification for the debugger front end.
type Event struct {
	Kind       EventKind
	Reason     StopReason // Why execution stopped, for EVENT_STOPPED.
	Path       string     // Source of the current instruction.
	Line       int        // Line of the current instruction.
	Breakpoint Breakpoint // Breakpoint hit or validated.
	Err        error      // Runtime fault that ended the program.
}

// Events drains the queued events.
func (emu *Emulator) Events() (events []Event) {
	events = emu.events
	emu.events = nil
	return
}

func (emu *Emulator) emit(event Event) {
	if emu.Verbose {
		logrus.WithFields(logrus.Fields{
			"event":  event.Kind.String(),
			"reason": event.Reason.String(),
			"line":   event.Line,
		}).Debug("event")
	}
	emu.events = append(emu.events, event)
}
