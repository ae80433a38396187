package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/reti/isa"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 2, Words: []string{"LOADI", "ACC", "1"}, Word: 0x7300_0001},
			{LineNo: 3, Words: []string{"NOP"}, Word: 0xc000_0000},
		},
		Lines:       []string{"# start", "LOADI ACC 1", "NOP", ""},
		LineToIndex: []int{NO_INSTRUCTION, 0, 1, NO_INSTRUCTION},
		IndexToLine: []int{2, 3},
	}
}

func TestProgram_Maps(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(2, prog.Len())
	assert.Equal(NO_INSTRUCTION, prog.Index(0))
	assert.Equal(NO_INSTRUCTION, prog.Index(1))
	assert.Equal(0, prog.Index(2))
	assert.Equal(1, prog.Index(3))
	assert.Equal(NO_INSTRUCTION, prog.Index(5))

	assert.Equal(2, prog.Line(0))
	assert.Equal(3, prog.Line(1))
	assert.Equal(0, prog.Line(2))
	assert.Equal(0, prog.Line(-1))

	assert.Equal("NOP", prog.Text(3))
	assert.Equal("", prog.Text(9))
}

func TestProgram_NextLine(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(2, prog.NextLine(0))
	assert.Equal(2, prog.NextLine(1))
	assert.Equal(3, prog.NextLine(3))
	assert.Equal(0, prog.NextLine(4))
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(1)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(3, dbg.LineNo)
		assert.Equal(isa.Word(0xc000_0000), dbg.Word)
	}
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(10)
	assert.Nil(dbg.Opcode)
	assert.Equal(NO_INSTRUCTION, dbg.Index)
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var indexes []int
	for index := range prog.Codes() {
		indexes = append(indexes, index)
		break
	}
	assert.Equal([]int{0}, indexes)
	assert.Equal([]isa.Word{0x7300_0001, 0xc000_0000}, prog.Words())
}
