package device

import (
	"errors"

	"github.com/ezrec/reti/translate"
)

var f = translate.From

var (
	// Device errors
	ErrReadOnly     = errors.New(f("device read only"))
	ErrOutOfRange   = errors.New(f("address out of range"))
	ErrUartNoOutput = errors.New(f("uart has no output"))
)

// ErrAccess describes a rejected device write.
type ErrAccess struct {
	Device  string
	Address uint32
	Err     error
}

func (err *ErrAccess) Error() string {
	return f("%v 0x%08x: %v", err.Device, err.Address, err.Err)
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}
