package processor

import (
	"errors"
	"fmt"
)

// Kind classifies generation failures.
type Kind int

const (
	KindGeneration Kind = iota
	KindInvalidInput
	KindNotFound
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindTimeout:
		return "timeout"
	default:
		return "generation"
	}
}

// Error is returned by Generate.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, KindGeneration when err is not an *Error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindGeneration
}
