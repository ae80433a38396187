package emulator

import (
	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/isa"
)

// Location is the source position of an instruction.
type Location struct {
	Path  string // Source file.
	Line  int    // Source line, starting from 1.
	Index int    // Instruction index within the source file.
	Isr   bool   // Set if the source is the interrupt service routine.
}

// program returns the listing of the main program or the ISR.
func (emu *Emulator) program(isr bool) (prog *cpu.Program, path string) {
	if emu.Image == nil {
		return
	}
	if isr {
		return emu.Image.Isr, emu.isrPath
	}
	return emu.Image.Main, emu.path
}

// programOf returns the listing loaded from path.
func (emu *Emulator) programOf(path string) (prog *cpu.Program, isr bool) {
	switch NormalizePath(emu.Files, path) {
	case emu.path:
		prog, _ = emu.program(false)
	case emu.isrPath:
		prog, _ = emu.program(true)
		isr = true
	}
	return
}

// pcOf converts an instruction index of the main program or the ISR into
// an address.
func (emu *Emulator) pcOf(index int, isr bool) uint32 {
	pc := emu.Image.Cpu.Base() + uint32(index)
	if isr {
		pc += uint32(emu.Image.IsrOffset)
	}
	return pc
}

// locate converts an address into the source position of the program
// that is running. The ISR is running while an interrupt is in service.
func (emu *Emulator) locate(pc uint32) (loc Location, ok bool) {
	if emu.Image == nil {
		return
	}

	index, ok := emu.Image.Cpu.CodeIndex(pc)
	if !ok {
		return
	}

	isr := emu.Image.Cpu.InInterrupt
	if isr {
		index -= emu.Image.IsrOffset
	}

	prog, path := emu.program(isr)
	if prog == nil || index < 0 || index >= prog.Len() {
		ok = false
		return
	}

	loc = Location{
		Path:  path,
		Line:  prog.Line(index),
		Index: index,
		Isr:   isr,
	}

	return
}

// Location returns the source position of the current instruction.
func (emu *Emulator) Location() (loc Location, ok bool) {
	if emu.Image == nil {
		return
	}
	return emu.locate(emu.Image.Cpu.Register[isa.REG_PC])
}
