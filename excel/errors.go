package excel

import (
	"errors"
	"fmt"
)

// ErrInvalidReference is matched by every *InvalidReferenceError via errors.Is.
var ErrInvalidReference = errors.New("invalid reference")

// InvalidReferenceError reports malformed cell or range syntax.
type InvalidReferenceError struct {
	Ref    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference %q: %s", e.Ref, e.Reason)
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}
