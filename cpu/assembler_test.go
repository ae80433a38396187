package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/reti/isa"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0x80000000", asm.Equate["ARENA_SRAM"])
	assert.Equal("0x40000000", asm.Equate["ARENA_UART"])
	assert.Equal("2", asm.Equate["UART_STATUS"])
}

func TestAssemblerLines(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"# header",           // 1
		"LOADI ACC 1",        // 2
		"",                   // 3
		"  ; also a comment", // 4
		"addi acc 2 # add",   // 5
		"JUMP 0",             // 6
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	assert.Equal(program, prog.Lines)
	assert.Equal([]int{NO_INSTRUCTION, 0, NO_INSTRUCTION, NO_INSTRUCTION, 1, 2}, prog.LineToIndex)
	assert.Equal([]int{2, 5, 6}, prog.IndexToLine)
	assert.Equal([]isa.Word{0x7300_0001, 0x0f00_0002, 0xf800_0000}, prog.Words())
	assert.Equal([]string{"addi", "acc", "2"}, prog.Opcodes[1].Words)

	// The maps are inverses of each other.
	for line := 1; line <= len(prog.Lines); line++ {
		index := prog.Index(line)
		if index != NO_INSTRUCTION {
			assert.Equal(line, prog.Line(index))
		}
	}
	for index := range prog.Len() {
		assert.Equal(index, prog.Index(prog.Line(index)))
	}
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Codec: isa.NewCodec(isa.Config{Variant: isa.VARIANT_OS})}
	asm.Predefine("BUFFER", "16")

	program := []string{
		".equ COUNT 3",
		".equ PTR IN2",
		"LOADI ACC $(COUNT * 4)",
		"LOADI PTR $(BUFFER + COUNT)",
		"LOADI IN1 'A'",
		"LOADI ACC '\\n'",
		"JUMP $(-INDEX)",
		"LOADI ACC $(LINENO)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	cd := asm.Codec
	var text []string
	for _, word := range prog.Words() {
		text = append(text, cd.Decode(word).String())
	}

	assert.Equal([]string{
		"LOADI ACC 12",
		"LOADI IN2 19",
		"LOADI IN1 65",
		"LOADI ACC 10",
		"JUMP -4",
		"LOADI ACC 8",
	}, text)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineno  int
		status  isa.Status
		err     error
	}){
		{[]string{"LOADI ACC 1", "FROB ACC 1"}, 2, isa.STATUS_MNEMONIC, isa.ErrMnemonicUnknown},
		{[]string{"", "# ok", "ADDI ACC"}, 3, isa.STATUS_ARITY, isa.ErrOperandCount},
		{[]string{"LOADI XX 1"}, 1, isa.STATUS_REGISTER, isa.ErrRegisterInvalid},
		{[]string{"LOADI ACC 1x"}, 1, isa.STATUS_NUMBER, isa.ErrNumberInvalid},
		{[]string{"LOADI ACC 0x1000000"}, 1, isa.STATUS_RANGE, isa.ErrNumberRange},
		{[]string{".equ A 1", ".equ A 2"}, 2, isa.STATUS_MNEMONIC, ErrEquateDuplicate},
		{[]string{".equ A"}, 1, isa.STATUS_MNEMONIC, ErrEquateSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(prog)
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.program, err)
		assert.Equal(entry.status, isa.StatusOf(err))

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax)) {
			assert.Equal(entry.lineno, syntax.LineNo)
			assert.Equal(entry.program[entry.lineno-1], syntax.Line)
		}
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("LOADI ACC $(1 +)"))
	assert.Error(err)
	_, err = asm.Parse(strings.NewReader(`LOADI ACC $("a")`))
	assert.True(errors.Is(err, ErrParseExpression(`"a"`)))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	image, err := Load(LoadConfig{}, []byte("LOADI ACC 1\nLOAD IN1 1\n"), []byte("RTI"), []uint32{5, 6})
	if !assert.NoError(err) {
		return
	}

	// TI ignores the interrupt routine.
	assert.Nil(image.Isr)
	assert.Equal(2, image.IsrOffset)
	assert.Equal([]isa.Word{0x7300_0001, 0x4100_0001}, image.Cpu.Code)
	assert.Equal(uint32(6), image.Cpu.ReadMemory(1))
	assert.Equal(uint32(0), image.Cpu.ReadMemory(2))

	_, err = Load(LoadConfig{MainPath: "main.reti"}, []byte("NOP\nBAD"), nil, nil)
	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal("main.reti", syntax.Path)
		assert.Equal(2, syntax.LineNo)
		assert.Contains(syntax.Error(), "main.reti:2")
	}

	_, err = Load(LoadConfig{Isa: isa.Config{Variant: isa.VARIANT_OS}, IsrPath: "isr.reti"},
		[]byte("NOP"), []byte("RTI 1"), nil)
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal("isr.reti", syntax.Path)
		assert.True(errors.Is(err, isa.ErrOperandCount))
	}
}
