package table

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn       = errors.New("missing column")
	ErrUnknownColumn       = errors.New("unknown column")
	ErrLengthMismatch      = errors.New("column length does not match row count")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidText         = errors.New("bytes are not valid in the declared encoding")
)

// InputError reports an upload that cannot be turned into a table. The
// message is meant to be shown to the user as is.
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// SerializationError reports a failed export. The table it was built from is
// left untouched.
type SerializationError struct {
	Encoding string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to export table as %s: %v", e.Encoding, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
