package cpu

import (
	"errors"

	"github.com/ezrec/reti/isa"
	"github.com/ezrec/reti/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcRange            = errors.New(f("pc out of code range"))
	ErrStackFull          = errors.New(f("interrupt stack full"))
	ErrVectorInvalid      = errors.New(f("interrupt vector invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrCodeBase           = errors.New(f("code base outside eprom"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrOpcode reports the word that failed to execute.
type ErrOpcode isa.Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x", uint32(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembly failure.
type ErrSyntax struct {
	Path   string
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	if err.Path != "" {
		return f("%v:%d '%v' %v", err.Path, err.LineNo, err.Line, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
