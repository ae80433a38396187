package cpu

import (
	"iter"

	"github.com/ezrec/reti/isa"
)

// NO_INSTRUCTION marks a source line that assembles to no word.
const NO_INSTRUCTION = -1

// Opcode is one assembled source line.
type Opcode struct {
	LineNo int      // Source line, starting from 1.
	Words  []string // Tokens after expansion.
	Word   isa.Word // Encoded instruction.
}

// Program is an assembled source text.
type Program struct {
	Opcodes     []Opcode // Instructions in execution order.
	Lines       []string // Source text, Lines[0] is line 1.
	LineToIndex []int    // Instruction index of each line, or NO_INSTRUCTION.
	IndexToLine []int    // Source line of each instruction.
}

type Debug struct {
	*Opcode
	Index int
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Index returns the instruction index of a line, or NO_INSTRUCTION.
func (prog *Program) Index(line int) int {
	if line < 1 || line > len(prog.LineToIndex) {
		return NO_INSTRUCTION
	}
	return prog.LineToIndex[line-1]
}

// Line returns the source line of an instruction index, or zero.
func (prog *Program) Line(index int) int {
	if index < 0 || index >= len(prog.IndexToLine) {
		return 0
	}
	return prog.IndexToLine[index]
}

// Text returns the source text of a line.
func (prog *Program) Text(line int) string {
	if line < 1 || line > len(prog.Lines) {
		return ""
	}
	return prog.Lines[line-1]
}

// NextLine returns the first line at or after line that holds an
// instruction, or zero if there is none.
func (prog *Program) NextLine(line int) int {
	for line = max(line, 1); line <= len(prog.LineToIndex); line++ {
		if prog.LineToIndex[line-1] != NO_INSTRUCTION {
			return line
		}
	}
	return 0
}

// Debug returns the opcode at an instruction index.
func (prog *Program) Debug(index int) (dbg Debug) {
	if index < 0 || index >= len(prog.Opcodes) {
		dbg.Index = NO_INSTRUCTION
		return
	}

	dbg = Debug{
		Opcode: &prog.Opcodes[index],
		Index:  index,
	}

	return
}

// Words returns the instruction words.
func (prog *Program) Words() (words []isa.Word) {
	for _, code := range prog.Codes() {
		words = append(words, code)
	}

	return
}

// Codes iterates over the instruction index and word pairs.
func (prog *Program) Codes() iter.Seq2[int, isa.Word] {
	return func(yield func(index int, code isa.Word) bool) {
		for index, op := range prog.Opcodes {
			if !yield(index, op.Word) {
				return
			}
		}
	}
}
