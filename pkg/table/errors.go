package table

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy is returned for a strategy name or value outside the known set
	ErrUnknownStrategy = errors.New("unknown table strategy")
	// ErrInvalidSettings is returned when a Settings value cannot be used
	ErrInvalidSettings = errors.New("invalid table settings")
	// ErrTooManyEdges is returned when a page exceeds Settings.MaxEdges
	ErrTooManyEdges = errors.New("too many edges")
)

// ErrorKind classifies a detection failure
type ErrorKind int

const (
	// KindConfig is a settings problem; no page was examined.
	KindConfig ErrorKind = iota
	// KindInput is a failure of the page collaborator to supply objects.
	KindInput
	// KindLimit is a page that exceeded a resource ceiling.
	KindLimit
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInput:
		return "input"
	case KindLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// Error reports a page that could not be examined. Geometric ambiguity is
// never an Error; it yields an empty result instead.
type Error struct {
	Kind ErrorKind
	Page int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("table detection on page %d (%s): %v", e.Page, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}
