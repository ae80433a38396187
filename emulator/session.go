package emulator

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/device"
	"github.com/ezrec/reti/isa"
)

// Variable is a named value shown by the debugger.
type Variable struct {
	Name  string
	Value int64
	Text  string // Value in the display radix.
}

// Frame is a stack trace entry.
type Frame struct {
	Id   int
	Name string
	Location
}

// DataBreakpoint watches writes to a data address.
type DataBreakpoint struct {
	Address  uint32
	Verified bool
}

// InstructionBreakpoint stops before the instruction at an address.
type InstructionBreakpoint struct {
	Address  uint32
	Verified bool
	Location
}

// Evaluate resolves a register name, a number giving a memory address, or
// an expression over the registers and mem(address). ok is false if the
// expression could not be evaluated.
func (emu *Emulator) Evaluate(expr string) (value int64, ok bool) {
	cpu := emu.Cpu()
	if cpu == nil {
		return
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return
	}

	if reg, found := emu.Codec().LookupRegister(expr); found {
		return cpu.GetRegister(reg), true
	}

	if addr, err := isa.ParseNumber(expr); err == nil {
		return int64(int32(cpu.ReadMemory(uint32(addr)))), true
	}

	value, err := emu.eval(expr)
	if err != nil {
		return
	}

	return value, true
}

// eval evaluates a starlark expression.
func (emu *Emulator) eval(expr string) (value int64, err error) {
	cpu := emu.Cpu()

	pred := starlark.StringDict{}
	for _, reg := range cpu.Isa.Registers {
		v := starlark.MakeInt64(cpu.GetRegister(reg))
		pred[reg.String()] = v
		pred[strings.ToLower(reg.String())] = v
	}
	pred["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr starlark.Int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr); err != nil {
			return nil, err
		}
		a64, ok := addr.Int64()
		if !ok {
			return nil, ErrExpression(addr.String())
		}
		return starlark.MakeInt64(int64(int32(cpu.ReadMemory(uint32(a64))))), nil
	})

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, &thread, "eval", "rc="+expr+"\n", pred)
	if err != nil {
		return
	}

	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}

	value, ok = rc.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}

	return
}

// ReadMemory reads count data words starting at addr.
func (emu *Emulator) ReadMemory(addr uint32, count int) (words []uint32, err error) {
	cpu := emu.Cpu()
	if cpu == nil {
		err = ErrNotLoaded
		return
	}

	for n := range count {
		words = append(words, cpu.ReadMemory(addr+uint32(n)))
	}

	return
}

type storer interface {
	Store(addr uint32, value uint32) error
}

// WriteMemory writes data words starting at addr, stopping at the first
// rejected word.
func (emu *Emulator) WriteMemory(addr uint32, words []uint32) (written int, err error) {
	cpu := emu.Cpu()
	if cpu == nil {
		err = ErrNotLoaded
		return
	}

	for n, word := range words {
		at := addr + uint32(n)
		if bus, ok := cpu.Memory.(storer); ok {
			err = bus.Store(at, word)
		} else if !cpu.WriteMemory(at, word) {
			err = &device.ErrAccess{Device: "sram", Address: at, Err: device.ErrOutOfRange}
		}
		if err != nil {
			return
		}
		written++
	}

	return
}

// Variables returns the registers in the display radix, and the decoded
// instruction register once an instruction has been fetched.
func (emu *Emulator) Variables() (vars []Variable) {
	cpu := emu.Cpu()
	if cpu == nil {
		return
	}

	codec := emu.Codec()
	for _, reg := range cpu.Isa.Registers {
		value := cpu.GetRegister(reg)
		vars = append(vars, Variable{
			Name:  reg.String(),
			Value: value,
			Text:  codec.Radix.FormatSigned(value),
		})
	}

	if cpu.Ticks == 0 {
		return
	}

	vars = append(vars, Variable{
		Name:  "IR",
		Value: int64(cpu.Ir),
		Text:  codec.Decode(cpu.Ir).String(),
	})

	return
}

// StackTrace returns the single frame of the current location.
func (emu *Emulator) StackTrace() (frames []Frame) {
	loc, ok := emu.Location()
	if !ok {
		return
	}

	name := "main"
	if loc.Isr {
		name = "isr"
	}

	frames = append(frames, Frame{Id: 0, Name: name, Location: loc})

	return
}

// SetDataBreakpoints replaces the watched data addresses. They can only be
// verified on the OS variant.
func (emu *Emulator) SetDataBreakpoints(addrs []uint32) (bps []DataBreakpoint) {
	os := emu.Load.Isa.Variant == isa.VARIANT_OS

	emu.dataBreakpoints = map[uint32]bool{}
	for _, addr := range addrs {
		emu.dataBreakpoints[addr] = true
		bps = append(bps, DataBreakpoint{Address: addr, Verified: os})
	}

	return
}

// SetInstructionBreakpoints replaces the instruction address breakpoints.
// They are verified when the address maps to a source line.
func (emu *Emulator) SetInstructionBreakpoints(addrs []uint32) (bps []InstructionBreakpoint) {
	emu.instructionBreakpoints = map[uint32]bool{}
	for _, addr := range addrs {
		emu.instructionBreakpoints[addr] = true
		bp := InstructionBreakpoint{Address: addr}
		bp.Location, bp.Verified = emu.source(addr)
		bps = append(bps, bp)
	}

	return
}

// source maps an address to the main program or the ISR, regardless of
// which of the two is running.
func (emu *Emulator) source(pc uint32) (loc Location, ok bool) {
	if emu.Image == nil {
		return
	}

	index, ok := emu.Image.Cpu.CodeIndex(pc)
	if !ok {
		return
	}

	isr := index >= emu.Image.IsrOffset
	if isr {
		index -= emu.Image.IsrOffset
	}

	prog, path := emu.program(isr)
	if prog == nil || index >= prog.Len() {
		ok = false
		return
	}

	loc = Location{Path: path, Line: prog.Line(index), Index: index, Isr: isr}

	return
}

// Address returns the address of the instruction at a source line.
func (emu *Emulator) Address(path string, line int) (pc uint32, ok bool) {
	prog, isr := emu.programOf(path)
	if prog == nil {
		return
	}

	index := prog.Index(line)
	if index == cpu.NO_INSTRUCTION {
		return
	}

	return emu.pcOf(index, isr), true
}
