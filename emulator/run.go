package emulator

import (
	"context"
	"slices"

	"github.com/ezrec/reti/isa"
)

// ready checks that a stopped program is loaded.
func (emu *Emulator) ready() (err error) {
	if emu.Image == nil {
		err = ErrNotLoaded
		return
	}

	if emu.state == STATE_TERMINATED {
		err = ErrTerminated
		return
	}

	return
}

// execute retires one instruction. The target of a call-like instruction
// is pushed on the return stack, unless it is already on top. The program
// has terminated when ok is false.
func (emu *Emulator) execute() (loc Location, ok bool, err error) {
	cpu := emu.Image.Cpu

	here, _ := emu.Location()
	call := cpu.IsCallInstruction()
	var target uint32
	if call {
		target, _ = cpu.NextPc()
	}

	err = cpu.Step()
	if err != nil {
		err = &ErrRuntime{Path: here.Path, LineNo: here.Line, Err: err}
		emu.terminate(err)
		return
	}

	if call {
		emu.pushReturn(target)
	}

	pc := cpu.Register[isa.REG_PC]

	loc, ok = emu.locate(pc)
	if !ok {
		emu.terminate(nil)
	}

	return
}

// pushReturn pushes a call target, dropping the oldest entry of a full
// stack.
func (emu *Emulator) pushReturn(target uint32) {
	if top, ok := emu.returns.Peek(); ok && top == target {
		return
	}

	if emu.returns.Full() {
		emu.returns.Data = slices.Delete(emu.returns.Data, 0, 1)
	}

	emu.returns.Push(target)
}

// run executes until done reports true, a breakpoint is hit, the program
// terminates or ctx is cancelled. Cancellation is checked once per
// instruction.
func (emu *Emulator) run(ctx context.Context, reason StopReason, done func() bool) (err error) {
	if err = emu.ready(); err != nil {
		return
	}

	emu.state = STATE_RUNNING

	for {
		loc, ok, err := emu.execute()
		if err != nil || !ok {
			return err
		}

		if bp, hit := emu.hitBreakpoint(loc); hit {
			emu.stopAt(STOP_BREAKPOINT, bp)
			return nil
		}

		if emu.instructionBreakpoints[emu.Image.Cpu.Register[isa.REG_PC]] {
			emu.stop(STOP_INSTRUCTION_BREAKPOINT)
			return nil
		}

		if emu.dataBreakpointHit() {
			emu.stop(STOP_DATA_BREAKPOINT)
			return nil
		}

		if done != nil && done() {
			emu.stop(reason)
			return nil
		}

		if ctx.Err() != nil {
			emu.stop(STOP_PAUSE)
			return nil
		}
	}
}

// dataBreakpointHit reports whether the last instruction wrote a watched
// address. Data breakpoints are advisory on the TI variant.
func (emu *Emulator) dataBreakpointHit() bool {
	if emu.Load.Isa.Variant != isa.VARIANT_OS {
		return false
	}

	for _, addr := range emu.Image.Cpu.Writes {
		if emu.dataBreakpoints[addr] {
			return true
		}
	}

	return false
}

// Continue runs until a breakpoint, termination or cancellation.
func (emu *Emulator) Continue(ctx context.Context) (err error) {
	return emu.run(ctx, STOP_NONE, nil)
}

// Step executes the instruction of the current line and stops at the next
// line.
func (emu *Emulator) Step() (err error) {
	if err = emu.ready(); err != nil {
		return
	}

	loc, ok, err := emu.execute()
	if err != nil || !ok {
		return
	}

	bp, _ := emu.hitBreakpoint(loc)
	emu.stopAt(STOP_STEP, bp)

	return
}

// StepOver runs a call-like instruction until the PC reaches its target.
// An instruction that is not a call behaves exactly like Step.
func (emu *Emulator) StepOver(ctx context.Context) (err error) {
	if err = emu.ready(); err != nil {
		return
	}

	cpu := emu.Image.Cpu
	if !cpu.IsCallInstruction() {
		return emu.Step()
	}

	target, err := cpu.NextPc()
	if err != nil {
		return emu.Step()
	}

	return emu.run(ctx, STOP_STEP_OVER, func() bool {
		return cpu.Register[isa.REG_PC] == target
	})
}

// StepOut runs until the PC reaches the innermost pending call target,
// which is then popped. With no pending target it behaves exactly like
// Continue.
func (emu *Emulator) StepOut(ctx context.Context) (err error) {
	if err = emu.ready(); err != nil {
		return
	}

	if emu.returns.Empty() {
		return emu.Continue(ctx)
	}

	cpu := emu.Image.Cpu
	return emu.run(ctx, STOP_STEP_OUT, func() bool {
		top, ok := emu.returns.Peek()
		if !ok || top != cpu.Register[isa.REG_PC] {
			return false
		}
		emu.returns.Pop()
		return true
	})
}

// Pause stops a program between instructions.
func (emu *Emulator) Pause() (err error) {
	if err = emu.ready(); err != nil {
		return
	}

	emu.stop(STOP_PAUSE)

	return
}

// Returns lists the pending call targets, innermost last.
func (emu *Emulator) Returns() []uint32 {
	return emu.returns.Data
}
