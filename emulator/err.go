package emulator

import (
	"errors"

	"github.com/ezrec/reti/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrNotLoaded  = errors.New(f("no program loaded"))
	ErrTerminated = errors.New(f("program terminated"))
	ErrNoPath     = errors.New(f("no program path"))
	ErrMemoryFile = errors.New(f("memory file invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Path   string
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("%v:%d %v", err.Path, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrExpression indicates an expression that does not evaluate to an integer.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("expression '%v' is not an integer", string(err))
}
