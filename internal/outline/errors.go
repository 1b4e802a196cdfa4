package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every argument validation error of Trace.
	ErrInvalidInput = errors.New("outline: invalid input")
	// ErrNilSource indicates a nil pixel source.
	ErrNilSource = fmt.Errorf("%w: nil pixel source", ErrInvalidInput)
	// ErrEmptyRect indicates a rectangle with zero width or height.
	ErrEmptyRect = fmt.Errorf("%w: empty rectangle", ErrInvalidInput)
	// ErrRectOutOfBounds indicates a rectangle not contained in the source bounds.
	ErrRectOutOfBounds = fmt.Errorf("%w: rectangle outside source bounds", ErrInvalidInput)
	// ErrInvalidScale indicates a non-positive pixels-per-unit factor.
	ErrInvalidScale = errors.New("outline: pixels per unit must be positive")
	// ErrInconsistent indicates the stitcher found no continuation segment.
	ErrInconsistent = errors.New("outline: boundary segments do not close")
)

// StitchError describes where polygon assembly got stuck.
type StitchError struct {
	At    Point     // vertex with no continuation
	After Direction // direction of the segment that ended at At
	Left  int       // segments still unconsumed
}

func (e *StitchError) Error() string {
	return fmt.Sprintf("outline: no segment continues %s at %v (%d segments left)", e.After, e.At, e.Left)
}

func (e *StitchError) Unwrap() error { return ErrInconsistent }
