package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIO             = errors.New("source is not readable")
	ErrParse          = errors.New("value is not a number")
	ErrShapeMismatch  = errors.New("inconsistent number of columns")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidOptions = errors.New("invalid generator options")
)

// Kind classifies a table load failure.
type Kind int

const (
	KindIO Kind = iota
	KindParse
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IOError"
	case KindParse:
		return "ParseError"
	case KindShape:
		return "ShapeMismatch"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindParse:
		return ErrParse
	case KindShape:
		return ErrShapeMismatch
	default:
		return ErrIO
	}
}

// LoadError is returned when a source cannot be turned into a Table.
// Line is 1-based and zero when the failure is not tied to a line.
type LoadError struct {
	Source string
	Kind   Kind
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s at line %d: %v", e.Source, e.Kind, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error kind, so errors.Is(err, ErrParse)
// holds for every parse failure.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
