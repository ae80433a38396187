package isa

import (
	"errors"

	"github.com/ezrec/reti/translate"
)

var f = translate.From

var (
	// Encode errors
	ErrMnemonicUnknown = errors.New(f("mnemonic unknown"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrNumberInvalid   = errors.New(f("number invalid"))
	ErrNumberRange     = errors.New(f("number out of range"))
	ErrEmpty           = errors.New(f("instruction empty"))
)

// Status classifies an encode result.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_OK       = Status(0) // ok
	STATUS_MNEMONIC = Status(1) // unknown mnemonic
	STATUS_ARITY    = Status(2) // wrong operand count
	STATUS_REGISTER = Status(3) // invalid register
	STATUS_NUMBER   = Status(4) // invalid number
	STATUS_RANGE    = Status(5) // number out of range
)

// ErrNumber is returned for a word that is not a numeric literal.
type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrNumber) Unwrap() error {
	return ErrNumberInvalid
}

// ErrEncode describes why a token list could not be encoded.
type ErrEncode struct {
	Status Status
	Token  string
	Err    error
}

func (err *ErrEncode) Error() string {
	return f("%v '%v': %v", err.Status.String(), err.Token, err.Err)
}

func (err *ErrEncode) Unwrap() error {
	return err.Err
}

// StatusOf returns the encode status carried by err.
func StatusOf(err error) Status {
	if err == nil {
		return STATUS_OK
	}

	var enc *ErrEncode
	if errors.As(err, &enc) {
		return enc.Status
	}

	return STATUS_MNEMONIC
}
