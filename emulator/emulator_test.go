package emulator

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/isa"
)

type memFiles struct {
	windows bool
	files   map[string][]byte
}

func (mf *memFiles) IsWindows() bool {
	return mf.windows
}

func (mf *memFiles) ReadFile(path string) ([]byte, error) {
	data, ok := mf.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (mf *memFiles) WriteFile(path string, data []byte) error {
	mf.files[path] = data
	return nil
}

func newEmulator(variant isa.Variant, sources map[string][]string) (emu *Emulator, files *memFiles) {
	files = &memFiles{files: map[string][]byte{}}
	for path, lines := range sources {
		files.files[path] = []byte(strings.Join(lines, "\n"))
	}

	cfg := Config{}
	cfg.Load.Isa.Variant = variant
	emu = New(cfg, files)

	return
}

var progComments = []string{
	"; header",          // 1
	"LOADI ACC 1",       // 2
	"",                  // 3
	"# comment",         // 4
	"ADDI ACC 1",        // 5
	"ADDI ACC 1 ; lazy", // 6
	"ADDI ACC 1",        // 7
}

// JUMP 3 calls the routine at lines 4-6, which returns with JUMP -4.
var progCall = []string{
	"JUMP 3",      // 1: 0
	"ADDI ACC 10", // 2: 1
	"JUMP 4",      // 3: 2
	"ADDI ACC 1",  // 4: 3
	"ADDI ACC 2",  // 5: 4
	"JUMP -4",     // 6: 5
}

func acc(emu *Emulator) int64 {
	return emu.Cpu().GetRegister(isa.REG_ACC)
}

func TestEmulatorBreakpointAdvance(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progComments})

	bps := emu.SetBreakpoints("main.reti", []int{3})
	require.Len(bps, 1)
	assert.False(bps[0].Verified)

	require.NoError(emu.Start(context.Background(), "main.reti", "", false))

	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(EVENT_STOPPED, events[0].Kind)
	assert.Equal(STOP_BREAKPOINT, events[0].Reason)
	assert.Equal(5, events[0].Line)
	assert.Equal(bps[0].Id, events[0].Breakpoint.Id)
	assert.Equal(int64(1), acc(emu))

	all := slices.Collect(emu.Breakpoints())
	require.Len(all, 1)
	assert.Equal(5, all[0].Line)
	assert.True(all[0].Verified)

	// Set after loading, the breakpoint is verified at once.
	bps = emu.SetBreakpoints("main.reti", []int{1, 100})
	require.Len(bps, 2)
	assert.Equal(2, bps[0].Line)
	assert.True(bps[0].Verified)
	assert.Equal(100, bps[1].Line)
	assert.False(bps[1].Verified)
}

func TestEmulatorLazyBreakpoint(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progComments})
	emu.SetBreakpoints("main.reti", []int{6})

	ctx := context.Background()
	require.NoError(emu.Start(ctx, "main.reti", "", true))

	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_ENTRY, events[0].Reason)
	assert.Equal(2, events[0].Line)

	all := slices.Collect(emu.Breakpoints())
	require.Len(all, 1)
	assert.Equal(6, all[0].Line)
	assert.False(all[0].Verified)
	assert.Len(slices.Collect(emu.Unverified()), 1)

	require.NoError(emu.Continue(ctx))
	events = emu.Events()
	require.Len(events, 2)
	assert.Equal(EVENT_BREAKPOINT_VALIDATED, events[0].Kind)
	assert.True(events[0].Breakpoint.Verified)
	assert.Equal(EVENT_STOPPED, events[1].Kind)
	assert.Equal(STOP_BREAKPOINT, events[1].Reason)
	assert.Equal(6, events[1].Line)
	assert.Equal(int64(2), acc(emu))
	assert.Empty(slices.Collect(emu.Unverified()))

	require.NoError(emu.Continue(ctx))
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(EVENT_TERMINATED, events[0].Kind)
	assert.NoError(events[0].Err)
	assert.Equal(STATE_TERMINATED, emu.State())
	assert.Equal(int64(4), acc(emu))

	assert.ErrorIs(emu.Continue(ctx), ErrTerminated)
	assert.ErrorIs(emu.Step(), ErrTerminated)
}

func TestEmulatorReload(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, files := newEmulator(isa.VARIANT_TI, map[string][]string{
		"main.reti":  progComments,
		"other.reti": {"NOP"},
	})

	ctx := context.Background()
	assert.ErrorIs(emu.Reload(ctx), ErrNotLoaded)

	require.NoError(emu.Start(ctx, "main.reti", "", true))
	emu.SetBreakpoints("main.reti", []int{7})
	emu.Events()

	// Breakpoints persist across reloads of the same path.
	files.files["main.reti"] = []byte("NOP\nNOP\nNOP\nNOP\nNOP\nNOP\nNOP\nNOP\n")
	require.NoError(emu.Reload(ctx))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_ENTRY, events[0].Reason)
	assert.Len(slices.Collect(emu.Breakpoints()), 1)

	require.NoError(emu.Continue(ctx))
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_BREAKPOINT, events[0].Reason)
	assert.Equal(7, events[0].Line)

	// A different path clears them.
	require.NoError(emu.Start(ctx, "other.reti", "", true))
	assert.Empty(slices.Collect(emu.Breakpoints()))

	assert.ErrorIs(emu.Start(ctx, "", "", true), ErrNoPath)
	assert.ErrorIs(emu.Start(ctx, "missing.reti", "", true), fs.ErrNotExist)
	assert.Nil(emu.Cpu())
}

func TestEmulatorSyntaxError(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"NOP", "BOGUS 1"}})

	err := emu.Start(context.Background(), "main.reti", "", true)
	var syntax *cpu.ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal("main.reti", syntax.Path)
		assert.Equal(2, syntax.LineNo)
	}
	assert.ErrorIs(err, isa.ErrMnemonicUnknown)
	assert.Equal(STATE_TERMINATED, emu.State())
}

func TestEmulatorTermination(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		lines []string
		ticks int
	}){
		{[]string{"; nothing here"}, 0},
		{[]string{"NOP"}, 1},
		{[]string{"LOADI PC 100"}, 1},
		{[]string{"JUMP -1"}, 1},
		{[]string{"LOADI ACC 1", "JUMP 2", "NOP"}, 2},
	}

	for _, entry := range table {
		emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": entry.lines})
		err := emu.Start(context.Background(), "main.reti", "", false)
		assert.NoError(err, entry.lines)
		assert.Equal(STATE_TERMINATED, emu.State(), entry.lines)
		events := emu.Events()
		if assert.Len(events, 1, entry.lines) {
			assert.Equal(EVENT_TERMINATED, events[0].Kind)
		}
		assert.Equal(entry.ticks, emu.Cpu().Ticks, entry.lines)
	}
}

func TestEmulatorStepOverNonCall(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()

	step, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progComments})
	over, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progComments})
	require.NoError(step.Start(ctx, "main.reti", "", true))
	require.NoError(over.Start(ctx, "main.reti", "", true))
	step.Events()
	over.Events()

	for range 4 {
		assert.NoError(step.Step())
		assert.NoError(over.StepOver(ctx))
		assert.Equal(step.Cpu().Register, over.Cpu().Register)
		assert.Equal(step.Events(), over.Events())
		assert.Equal(step.State(), over.State())
	}

	assert.Equal(STATE_TERMINATED, over.State())
}

func TestEmulatorCallStepping(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progCall})

	// Step over the call stops at its target.
	require.NoError(emu.Start(ctx, "main.reti", "", true))
	emu.Events()
	require.NoError(emu.StepOver(ctx))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_STEP_OVER, events[0].Reason)
	assert.Equal(4, events[0].Line)
	assert.Equal(int64(0), acc(emu))
	assert.Equal([]uint32{3}, emu.Returns())

	// Step into the call, then step out at the next pending target.
	require.NoError(emu.Start(ctx, "main.reti", "", true))
	emu.Events()
	assert.Empty(emu.Returns())
	require.NoError(emu.Step())
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_STEP, events[0].Reason)
	assert.Equal(4, events[0].Line)
	assert.Equal([]uint32{3}, emu.Returns())

	require.NoError(emu.Step())
	emu.Events()
	require.NoError(emu.StepOut(ctx))
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_STEP_OUT, events[0].Reason)
	assert.Equal(2, events[0].Line)
	assert.Equal(int64(3), acc(emu))
	assert.Equal([]uint32{3}, emu.Returns())

	// A breakpoint on the target line takes precedence.
	require.NoError(emu.Start(ctx, "main.reti", "", true))
	emu.SetBreakpoints("main.reti", []int{4})
	emu.Events()
	require.NoError(emu.StepOver(ctx))
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_BREAKPOINT, events[0].Reason)
	assert.Equal(4, events[0].Line)
}

func TestEmulatorStepOverJump(t *testing.T) {
	table := []struct {
		name  string
		prog  []string
		line  int
		acc   int64
		ticks int
	}{
		{"forward", []string{"LOADI ACC 1", "JUMP 2", "LOADI ACC 5", "LOADI IN1 3", "LOADI IN2 4"}, 4, 1, 2},
		{"self", []string{"LOADI ACC 1", "JUMP 0"}, 2, 1, 2},
		{"pc compute", []string{"LOADI ACC 1", "ADDI PC 2", "LOADI ACC 5", "NOP"}, 4, 1, 2},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			ctx := context.Background()
			emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": entry.prog})
			require.NoError(emu.Start(ctx, "main.reti", "", true))
			require.NoError(emu.Step())
			emu.Events()

			require.NoError(emu.StepOver(ctx))
			events := emu.Events()
			require.Len(events, 1)
			assert.Equal(STOP_STEP_OVER, events[0].Reason)
			assert.Equal(entry.line, events[0].Line)
			assert.Equal(entry.acc, acc(emu))
			assert.Equal(entry.ticks, emu.Cpu().Ticks)
			assert.Equal(STATE_STOPPED, emu.State())
		})
	}
}

func TestEmulatorReturnLimit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"JUMP 1", "JUMP -1"}})
	require.NoError(emu.Start(ctx, "main.reti", "", true))

	for range RETURN_LIMIT + 3 {
		require.NoError(emu.Step())
	}
	assert.Len(emu.Returns(), RETURN_LIMIT)
}

func TestEmulatorStepOutFallback(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()

	out, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progCall})
	cont, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": progCall})
	require.NoError(out.Start(ctx, "main.reti", "", true))
	require.NoError(cont.Start(ctx, "main.reti", "", true))

	assert.NoError(out.StepOut(ctx))
	assert.NoError(cont.Continue(ctx))
	assert.Equal(cont.Events(), out.Events())
	assert.Equal(cont.Cpu().Register, out.Cpu().Register)
	assert.Equal(int64(13), acc(out))
	assert.Equal(STATE_TERMINATED, out.State())
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"LOADI ACC 1", "JUMP 0"}})
	require.NoError(emu.Start(context.Background(), "main.reti", "", true))
	emu.Events()

	// At most one instruction runs after a cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(emu.Continue(ctx))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_PAUSE, events[0].Reason)
	assert.Equal(1, emu.Cpu().Ticks)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.NoError(emu.Continue(ctx))
	events = emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_PAUSE, events[0].Reason)
	assert.Equal(2, events[0].Line)
	assert.Equal(STATE_STOPPED, emu.State())

	require.NoError(emu.Pause())
	assert.Equal(STOP_PAUSE, emu.Reason())
}

func TestEmulatorInterrupt(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	emu, _ := newEmulator(isa.VARIANT_OS, map[string][]string{
		"main.reti": {
			"LOADI ACC 1", // 1: 0
			"INT 0",       // 2: 1
			"ADDI ACC 1",  // 3: 2
		},
		"isr.reti": {
			"; isr",       // 1
			"ADDI ACC 10", // 2: 3
			"RTI",         // 3: 4
		},
	})

	require.NoError(emu.Start(ctx, "main.reti", "isr.reti", true))
	emu.Events()

	pc, ok := emu.Address("isr.reti", 3)
	assert.True(ok)
	assert.Equal(uint32(4), pc)
	_, ok = emu.Address("isr.reti", 1)
	assert.False(ok)

	ibps := emu.SetInstructionBreakpoints([]uint32{4, 100})
	require.Len(ibps, 2)
	assert.True(ibps[0].Verified)
	assert.Equal("isr.reti", ibps[0].Path)
	assert.Equal(3, ibps[0].Line)
	assert.False(ibps[1].Verified)

	lines := []struct {
		path string
		line int
	}{
		{"main.reti", 2},
		{"isr.reti", 2},
		{"isr.reti", 3},
		{"main.reti", 3},
	}
	for _, expect := range lines {
		require.NoError(emu.Step())
		events := emu.Events()
		require.Len(events, 1)
		assert.Equal(expect.path, events[0].Path)
		assert.Equal(expect.line, events[0].Line)

		frames := emu.StackTrace()
		require.Len(frames, 1)
		assert.Equal(expect.path == "isr.reti", frames[0].Isr)
	}
	assert.Equal([]uint32{3}, emu.Returns())

	require.NoError(emu.Step())
	assert.Equal(STATE_TERMINATED, emu.State())
	assert.Equal(int64(12), acc(emu))

	// Instruction breakpoints stop before the instruction runs.
	require.NoError(emu.Start(ctx, "main.reti", "isr.reti", false))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_INSTRUCTION_BREAKPOINT, events[0].Reason)
	assert.Equal(int64(11), acc(emu))
}

func TestEmulatorCodeSegment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	emu, _ := newEmulator(isa.VARIANT_OS, map[string][]string{
		"main.reti": {"LOADI ACC 1", "INT 0", "ADDI ACC 1"},
		"isr.reti":  {"ADDI ACC 10", "RTI"},
	})
	emu.Load.CodeBase = 0x20

	require.NoError(emu.Start(ctx, "main.reti", "isr.reti", true))
	emu.Events()

	loc, ok := emu.Location()
	require.True(ok)
	assert.Equal("main.reti", loc.Path)
	assert.Equal(1, loc.Line)

	pc, ok := emu.Address("main.reti", 2)
	assert.True(ok)
	assert.Equal(uint32(0x21), pc)
	pc, ok = emu.Address("isr.reti", 2)
	assert.True(ok)
	assert.Equal(uint32(0x24), pc)

	ibps := emu.SetInstructionBreakpoints([]uint32{0x24, 0x4})
	require.Len(ibps, 2)
	assert.True(ibps[0].Verified)
	assert.Equal("isr.reti", ibps[0].Path)
	assert.Equal(2, ibps[0].Line)
	assert.False(ibps[1].Verified)

	require.NoError(emu.Continue(ctx))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_INSTRUCTION_BREAKPOINT, events[0].Reason)
	assert.Equal("isr.reti", events[0].Path)
	assert.Equal(2, events[0].Line)
	assert.Equal(int64(11), acc(emu))

	// Source positions follow the code segment register.
	emu.Cpu().Register[isa.REG_CS] = 0x40
	pc, ok = emu.Address("main.reti", 1)
	assert.True(ok)
	assert.Equal(uint32(0x40), pc)
	_, ok = emu.Location()
	assert.False(ok)
}

func TestEmulatorRuntimeFault(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newEmulator(isa.VARIANT_OS, map[string][]string{"main.reti": {"NOP", "INT 5"}})
	err := emu.Start(context.Background(), "main.reti", "", false)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
	}
	assert.ErrorIs(err, cpu.ErrVectorInvalid)

	events := emu.Events()
	if assert.Len(events, 1) {
		assert.Equal(EVENT_TERMINATED, events[0].Kind)
		assert.ErrorIs(events[0].Err, cpu.ErrVectorInvalid)
	}
}

func TestEmulatorDataBreakpoint(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	lines := []string{"LOADI ACC 7", "STORE ACC 5", "NOP"}

	emu, _ := newEmulator(isa.VARIANT_OS, map[string][]string{"main.reti": lines})
	bps := emu.SetDataBreakpoints([]uint32{0x8000_0005})
	require.Len(bps, 1)
	assert.True(bps[0].Verified)

	require.NoError(emu.Start(context.Background(), "main.reti", "", false))
	events := emu.Events()
	require.Len(events, 1)
	assert.Equal(STOP_DATA_BREAKPOINT, events[0].Reason)
	assert.Equal(3, events[0].Line)

	words, err := emu.ReadMemory(0x8000_0005, 1)
	assert.NoError(err)
	assert.Equal([]uint32{7}, words)

	// Advisory on the TI variant.
	emu, _ = newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"LOADI ACC 7", "STORE 5", "NOP"}})
	bps = emu.SetDataBreakpoints([]uint32{5})
	require.Len(bps, 1)
	assert.False(bps[0].Verified)

	require.NoError(emu.Start(context.Background(), "main.reti", "", false))
	assert.Equal(STATE_TERMINATED, emu.State())
}

func TestEmulatorEvaluate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"LOADI ACC 3", "NOP"}})

	_, ok := emu.Evaluate("ACC")
	assert.False(ok)

	emu.Data = []uint32{0, 0, 0, 0, 0, 42, 0xffff_ffff}
	require.NoError(emu.Start(context.Background(), "main.reti", "", true))
	require.NoError(emu.Step())

	table := [](struct {
		expr  string
		value int64
		ok    bool
	}){
		{"ACC", 3, true},
		{" acc ", 3, true},
		{"PC", 1, true},
		{"5", 42, true},
		{"0x6", -1, true},
		{"ACC + mem(5)", 45, true},
		{"acc * 2 - IN1", 6, true},
		{"ACC +", 0, false},
		{"'text'", 0, false},
		{"SP", 0, false},
		{"", 0, false},
	}

	for _, entry := range table {
		value, ok := emu.Evaluate(entry.expr)
		assert.Equal(entry.ok, ok, entry.expr)
		if entry.ok {
			assert.Equal(entry.value, value, entry.expr)
		}
	}
}

func TestEmulatorVariables(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"LOADI ACC -2", "NOP"}})
	emu.Load.Isa.Radix = isa.RADIX_HEX
	require.NoError(emu.Start(context.Background(), "main.reti", "", true))

	// Nothing has been fetched at entry.
	vars := emu.Variables()
	require.Len(vars, 4)
	assert.Equal(Variable{Name: "PC", Value: 0, Text: "0x0"}, vars[0])
	for _, v := range vars {
		assert.NotEqual("IR", v.Name)
	}

	require.NoError(emu.Step())

	vars = emu.Variables()
	require.Len(vars, 5)
	assert.Equal(Variable{Name: "PC", Value: 1, Text: "0x1"}, vars[0])
	assert.Equal(Variable{Name: "ACC", Value: -2, Text: "-0x2"}, vars[3])
	assert.Equal("IR", vars[4].Name)
	assert.Equal("LOADI ACC -0x2", vars[4].Text)
}

func TestEmulatorWriteMemory(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, _ := newEmulator(isa.VARIANT_OS, map[string][]string{"main.reti": {"NOP"}})
	_, err := emu.WriteMemory(0x8000_0000, []uint32{1})
	assert.ErrorIs(err, ErrNotLoaded)

	require.NoError(emu.Start(context.Background(), "main.reti", "", true))

	n, err := emu.WriteMemory(0x8000_0010, []uint32{1, 2, 3})
	assert.NoError(err)
	assert.Equal(3, n)
	words, err := emu.ReadMemory(0x8000_0010, 3)
	assert.NoError(err)
	assert.Equal([]uint32{1, 2, 3}, words)

	_, err = emu.WriteMemory(0x0000_0000, []uint32{1})
	assert.Error(err)
}

func TestEmulatorMemoryFiles(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu, files := newEmulator(isa.VARIANT_TI, map[string][]string{"main.reti": {"LOAD ACC 1", "NOP"}})
	files.files["data.mem"] = []byte("; data\n5 0x10\n0b11 # three\n")

	data, err := emu.LoadMemory("data.mem")
	require.NoError(err)
	assert.Equal([]uint32{5, 16, 3}, data)

	require.NoError(emu.Start(context.Background(), "main.reti", "", true))
	require.NoError(emu.Step())
	assert.Equal(int64(16), acc(emu))

	require.NoError(emu.SaveMemory("out.mem", 0, 3))
	assert.Contains(string(files.files["out.mem"]), "0x00000010\n")

	emu.Data = nil
	data, err = emu.LoadMemory("out.mem")
	require.NoError(err)
	assert.Equal([]uint32{5, 16, 3}, data)

	files.files["bad.mem"] = []byte("1\nzz\n")
	_, err = emu.LoadMemory("bad.mem")
	assert.ErrorIs(err, ErrMemoryFile)
}

func TestNormalizePath(t *testing.T) {
	assert := assert.New(t)

	windows := &memFiles{windows: true}
	unix := &memFiles{}

	assert.Equal(`c:\src\main.reti`, NormalizePath(windows, "C:/src/main.reti"))
	assert.Equal(`c:\src\main.reti`, NormalizePath(windows, `c:\src\main.reti`))
	assert.Equal("/src/main.reti", NormalizePath(unix, "/src/./main.reti"))
}
