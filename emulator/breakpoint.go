package emulator

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/reti/internal"
)

// Breakpoint is a source line breakpoint.
type Breakpoint struct {
	Id       int    // Unique identifier.
	Path     string // Source file.
	Line     int    // Source line, moved to the next instruction line.
	Verified bool   // Set when the line holds an instruction.
}

// SetBreakpoints replaces the breakpoints of a source file.
func (emu *Emulator) SetBreakpoints(path string, lines []int) (bps []Breakpoint) {
	path = NormalizePath(emu.Files, path)

	for _, line := range lines {
		emu.nextId++
		bps = append(bps, Breakpoint{
			Id:   emu.nextId,
			Path: path,
			Line: line,
		})
	}

	if len(bps) == 0 {
		delete(emu.breakpoints, path)
		return
	}

	emu.breakpoints[path] = bps
	emu.verify(path)

	bps = slices.Clone(emu.breakpoints[path])

	return
}

// ClearBreakpoints removes all source line breakpoints.
func (emu *Emulator) ClearBreakpoints() {
	emu.breakpoints = map[string][]Breakpoint{}
}

// Breakpoints iterates over the breakpoints of all source files.
func (emu *Emulator) Breakpoints() iter.Seq[Breakpoint] {
	var seqs []iter.Seq[Breakpoint]
	for _, path := range slices.Sorted(maps.Keys(emu.breakpoints)) {
		seqs = append(seqs, slices.Values(emu.breakpoints[path]))
	}

	return internal.Concat(seqs...)
}

// Unverified iterates over the breakpoints that are not verified yet.
func (emu *Emulator) Unverified() iter.Seq[Breakpoint] {
	return internal.Filter(emu.Breakpoints(), func(bp Breakpoint) bool {
		return !bp.Verified
	})
}

// verifyBreakpoints verifies the breakpoints of every loaded source.
func (emu *Emulator) verifyBreakpoints() {
	for path := range emu.breakpoints {
		emu.verify(path)
	}
}

// verify moves unverified breakpoints off lines without an instruction,
// and marks them verified unless the line carries the lazy marker.
func (emu *Emulator) verify(path string) {
	prog, _ := emu.programOf(path)
	if prog == nil {
		return
	}

	bps := emu.breakpoints[path]
	for n := range bps {
		bp := &bps[n]
		if bp.Verified {
			continue
		}

		line := prog.NextLine(bp.Line)
		if line == 0 {
			continue
		}

		bp.Line = line
		bp.Verified = !emu.lazy(prog.Text(line))
	}
}

func (emu *Emulator) lazy(text string) bool {
	return strings.Contains(text, emu.LazyMarker)
}

// hitBreakpoint checks for a breakpoint at a location. The first hit of a
// lazy breakpoint validates it.
func (emu *Emulator) hitBreakpoint(loc Location) (bp Breakpoint, ok bool) {
	bps := emu.breakpoints[loc.Path]
	for n := range bps {
		if bps[n].Line != loc.Line {
			continue
		}

		if !bps[n].Verified {
			bps[n].Verified = true
			emu.emit(Event{
				Kind:       EVENT_BREAKPOINT_VALIDATED,
				Path:       loc.Path,
				Line:       loc.Line,
				Breakpoint: bps[n],
			})
		}

		return bps[n], true
	}

	return
}
