package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is returned when a mutation would exceed the capacity of a
	// ring with overwrite disabled. The ring is left unchanged.
	ErrOverflow = errors.New("ring buffer overflow with overwrite disabled")

	// ErrEmpty is returned by Pop and PopLeft on an empty ring.
	ErrEmpty = errors.New("pop from an empty ring buffer")

	// ErrIndexType is returned by Select for non-integer indices.
	ErrIndexType = errors.New("ring buffer indices must be integers")

	// ErrIndexRange matches every *RangeError via errors.Is.
	ErrIndexRange = errors.New("ring buffer index out of range")

	// ErrCapacity is returned by New for a negative capacity.
	ErrCapacity = errors.New("ring buffer capacity must be >= 0")

	// ErrElementType is returned by New for element types that are neither a
	// numeric scalar nor a fixed-size array of one.
	ErrElementType = errors.New("ring buffer element type must be numeric")
)

// RangeError reports every index that fell outside [-Length, Length).
type RangeError struct {
	Indices []int
	Length  int
}

func (e *RangeError) Error() string {
	noun := "indices"
	if len(e.Indices) == 1 {
		noun = "index"
	}
	return fmt.Sprintf("ring buffer %s %v out of range: ring buffer has length %d", noun, e.Indices, e.Length)
}

// Is reports whether target is ErrIndexRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexRange
}
