// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/reti/device"
	"github.com/ezrec/reti/isa"
)

// COMMENT_DELIMITERS start a comment that runs to the end of the line.
const COMMENT_DELIMITERS = "#;"

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"INDEX":        "0",
	"ARENA_MASK":   fmt.Sprintf("%#x", device.ARENA_MASK),
	"ARENA_EPROM":  fmt.Sprintf("%#x", device.ARENA_EPROM),
	"ARENA_UART":   fmt.Sprintf("%#x", device.ARENA_UART),
	"ARENA_SRAM":   fmt.Sprintf("%#x", device.ARENA_SRAM),
	"UART_SEND":    fmt.Sprintf("%d", device.UART_SEND),
	"UART_RECEIVE": fmt.Sprintf("%d", device.UART_RECEIVE),
	"UART_STATUS":  fmt.Sprintf("%d", device.UART_STATUS),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for ReTI source text.
type Assembler struct {
	Verbose bool       // If set, verbosely logs the assembler actions.
	Codec   *isa.Codec // Instruction encoder.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// StripComment removes a trailing comment from a source line.
func StripComment(text string) string {
	if n := strings.IndexAny(text, COMMENT_DELIMITERS); n >= 0 {
		text = text[:n]
	}
	return strings.TrimSpace(text)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := isa.ParseNumber(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a comment free line into tokens.
func (asm *Assembler) parseLine(line string, lineno int, index int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["INDEX"] = fmt.Sprintf("%v", index)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program. The first line that fails
// to assemble aborts the parse.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	if asm.Codec == nil {
		asm.Codec = isa.NewCodec(isa.Config{})
	}

	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			prog = nil
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithFields(logrus.Fields{
				"line": lineno,
				"text": text,
			}).Debug("asm")
		}

		prog.Lines = append(prog.Lines, text)
		prog.LineToIndex = append(prog.LineToIndex, NO_INSTRUCTION)

		var words []string
		words, err = asm.parseLine(StripComment(text), lineno, prog.Len())
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		var word isa.Word
		word, err = asm.Codec.Encode(words)
		if err != nil {
			return
		}

		prog.LineToIndex[lineno-1] = prog.Len()
		prog.IndexToLine = append(prog.IndexToLine, lineno)
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Words:  words,
			Word:   word,
		})
	}

	err = scanner.Err()

	return
}

// LoadConfig configures Load.
type LoadConfig struct {
	Verbose    bool              // Verbose assembler and CPU logging.
	Isa        isa.Config        // Variant and display radix.
	MemorySize int               // SRAM words, or 0 for device.SRAM_SIZE.
	Equate     map[string]string // Predefined equates.
	CodeBase   uint32            // OS variant EPROM address of the first instruction.
	MainPath   string            // Name of the main program in errors.
	IsrPath    string            // Name of the interrupt routine in errors.
	Input      io.Reader         // OS variant UART input.
	Output     io.Writer         // OS variant UART output.
}

// Image is a loaded program ready to run.
type Image struct {
	Main      *Program // Main program.
	Isr       *Program // Interrupt service routine, or nil.
	IsrOffset int      // Instruction index of the first ISR word.
	Cpu       *Cpu     // Processor at reset.
}

// Load assembles the main program and the optional OS variant interrupt
// service routine, and creates a CPU at reset with data at the start of
// the data RAM.
func Load(cfg LoadConfig, main, isr []byte, data []uint32) (image *Image, err error) {
	codec := isa.NewCodec(cfg.Isa)

	asm := &Assembler{Verbose: cfg.Verbose, Codec: codec}
	for equ, value := range cfg.Equate {
		asm.Predefine(equ, value)
	}

	mainProg, err := asm.Parse(bytes.NewReader(main))
	if err != nil {
		setPath(err, cfg.MainPath)
		return
	}

	img := &Image{
		Main:      mainProg,
		IsrOffset: mainProg.Len(),
	}

	os := cfg.Isa.Variant == isa.VARIANT_OS
	if os && isr != nil {
		img.Isr, err = asm.Parse(bytes.NewReader(isr))
		if err != nil {
			setPath(err, cfg.IsrPath)
			return
		}
	}

	size := cfg.MemorySize
	if size <= 0 {
		size = device.SRAM_SIZE
	}
	sram := device.NewSram(size)
	sram.Load(0, data)

	code := mainProg.Words()
	if img.Isr != nil {
		code = append(code, img.Isr.Words()...)
	}

	if !os {
		img.Cpu = NewCpu(codec.Isa, code, sram)
		img.Cpu.Verbose = cfg.Verbose
		image = img
		return
	}

	base := cfg.CodeBase
	if base&device.ARENA_MASK != device.ARENA_EPROM || uint64(base)+uint64(len(code)) > EPROM_LIMIT {
		err = ErrCodeBase
		return
	}

	eprom := &device.Eprom{Data: make([]uint32, int(base)+len(code))}
	for n, word := range code {
		eprom.Data[int(base)+n] = uint32(word)
	}

	bus := &device.Bus{
		Eprom: eprom,
		Uart:  &device.Uart{Input: cfg.Input, Output: cfg.Output},
		Sram:  sram,
	}

	cpu := NewCpu(codec.Isa, code, bus)
	cpu.Verbose = cfg.Verbose

	top := DATA_BASE + uint32(size) - 1
	cpu.Register[isa.REG_PC] = base
	cpu.Register[isa.REG_CS] = base
	cpu.Register[isa.REG_DS] = DATA_BASE
	cpu.Register[isa.REG_SP] = top
	cpu.Register[isa.REG_BAF] = top

	if img.Isr != nil {
		cpu.Vectors = []uint32{base + uint32(img.IsrOffset)}
	}

	img.Cpu = cpu
	image = img

	return
}

func setPath(err error, path string) {
	if se, ok := err.(*ErrSyntax); ok {
		se.Path = path
	}
}
