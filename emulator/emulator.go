// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"

	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/isa"
)

const (
	LAZY_MARKER  = "lazy" // Default text that defers breakpoint validation.
	RETURN_LIMIT = 64     // Pending call targets kept for step out.
)

// Config configures an Emulator.
type Config struct {
	Verbose    bool           // If set, enables verbose logging.
	Load       cpu.LoadConfig // Program loading.
	LazyMarker string         // Breakpoints on lines holding this text are lazy.
}

// Emulator is the execution controller of a debug session. It owns the
// loaded image and tracks breakpoints across reloads.
type Emulator struct {
	Config
	Files FileAccessor // Source and memory file access.
	Data  []uint32     // Initial data segment, loaded at every start.

	Image *cpu.Image // Currently loaded image.

	path        string
	isrPath     string
	stopOnEntry bool

	state   State
	reason  StopReason
	events  []Event
	returns cpu.Stack // Targets of calls still in progress.

	breakpoints            map[string][]Breakpoint
	nextId                 int
	dataBreakpoints        map[uint32]bool
	instructionBreakpoints map[uint32]bool
}

// New creates an emulator. A nil files accessor uses the host filesystem.
func New(cfg Config, files FileAccessor) (emu *Emulator) {
	if cfg.LazyMarker == "" {
		cfg.LazyMarker = LAZY_MARKER
	}
	if files == nil {
		files = OsFiles{}
	}

	emu = &Emulator{
		Config:                 cfg,
		Files:                  files,
		state:                  STATE_TERMINATED,
		returns:                cpu.Stack{Limit: RETURN_LIMIT},
		breakpoints:            map[string][]Breakpoint{},
		dataBreakpoints:        map[uint32]bool{},
		instructionBreakpoints: map[uint32]bool{},
	}

	return
}

// State returns the controller state.
func (emu *Emulator) State() State {
	return emu.state
}

// Reason returns why execution last stopped.
func (emu *Emulator) Reason() StopReason {
	return emu.reason
}

// Cpu returns the processor of the loaded image, or nil.
func (emu *Emulator) Cpu() *cpu.Cpu {
	if emu.Image == nil {
		return nil
	}
	return emu.Image.Cpu
}

// Codec returns the instruction codec of the session.
func (emu *Emulator) Codec() *isa.Codec {
	return isa.NewCodec(emu.Load.Isa)
}

// Start loads the program at path, and the OS variant interrupt service
// routine at isrPath if set, and either stops on entry or runs until the
// first stop. Starting a different path than before clears all breakpoints.
func (emu *Emulator) Start(ctx context.Context, path string, isrPath string, stopOnEntry bool) (err error) {
	if path == "" {
		err = ErrNoPath
		return
	}

	path = NormalizePath(emu.Files, path)
	if isrPath != "" {
		isrPath = NormalizePath(emu.Files, isrPath)
	}

	if emu.path != "" && path != emu.path {
		emu.breakpoints = map[string][]Breakpoint{}
		emu.dataBreakpoints = map[uint32]bool{}
		emu.instructionBreakpoints = map[uint32]bool{}
	}

	emu.path = path
	emu.isrPath = isrPath
	emu.stopOnEntry = stopOnEntry

	return emu.start(ctx)
}

// Reload rebuilds the image from the same sources, keeping breakpoints.
func (emu *Emulator) Reload(ctx context.Context) (err error) {
	if emu.path == "" {
		err = ErrNotLoaded
		return
	}

	return emu.start(ctx)
}

func (emu *Emulator) start(ctx context.Context) (err error) {
	emu.Image = nil
	emu.state = STATE_TERMINATED
	emu.reason = STOP_NONE
	emu.returns.Reset()

	main, err := emu.Files.ReadFile(emu.path)
	if err != nil {
		return
	}

	var isr []byte
	if emu.isrPath != "" && emu.Load.Isa.Variant == isa.VARIANT_OS {
		isr, err = emu.Files.ReadFile(emu.isrPath)
		if err != nil {
			return
		}
	}

	cfg := emu.Load
	cfg.Verbose = cfg.Verbose || emu.Verbose
	cfg.MainPath = emu.path
	cfg.IsrPath = emu.isrPath

	image, err := cpu.Load(cfg, main, isr, emu.Data)
	if err != nil {
		return
	}

	emu.Image = image
	emu.verifyBreakpoints()

	loc, ok := emu.Location()
	if !ok {
		emu.terminate(nil)
		return
	}

	if emu.stopOnEntry {
		emu.stop(STOP_ENTRY)
		return
	}

	if bp, ok := emu.hitBreakpoint(loc); ok {
		emu.stopAt(STOP_BREAKPOINT, bp)
		return
	}

	return emu.Continue(ctx)
}

// stop records a stop at the current location.
func (emu *Emulator) stop(reason StopReason) {
	emu.stopAt(reason, Breakpoint{})
}

func (emu *Emulator) stopAt(reason StopReason, bp Breakpoint) {
	emu.state = STATE_STOPPED
	emu.reason = reason

	loc, _ := emu.Location()
	emu.emit(Event{
		Kind:       EVENT_STOPPED,
		Reason:     reason,
		Path:       loc.Path,
		Line:       loc.Line,
		Breakpoint: bp,
	})
}

// terminate ends the program, with the fault that ended it if any.
func (emu *Emulator) terminate(err error) {
	emu.state = STATE_TERMINATED
	emu.reason = STOP_NONE
	emu.emit(Event{
		Kind: EVENT_TERMINATED,
		Err:  err,
	})
}
