package buffer

import (
	"fmt"
	"reflect"
)

// Ring is a fixed-capacity circular buffer of numeric elements.
//
// left and right are logical cursors; right-left is the current length.
// left is kept in [0, capacity) and right may run up to left+capacity, so
// every modulo is taken on a non-negative operand.
type Ring[E any] struct {
	storage []E
	unwrap  []E
	fill    E

	elemType reflect.Type
	dims     []int

	capacity  int
	left      int
	right     int
	overwrite bool
	dirty     bool
}

// New returns an empty ring holding up to capacity elements of type E.
// E must be an integer, float or complex kind, or a fixed-size array of one.
func New[E any](capacity int, opts ...Option) (*Ring[E], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}

	t := reflect.TypeFor[E]()
	dims, ok := recordDims(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementType, t)
	}

	cfg := applyOptions(opts)
	r := &Ring[E]{
		storage:   make([]E, capacity),
		unwrap:    make([]E, capacity),
		fill:      fillValue[E](t),
		elemType:  t,
		dims:      dims,
		capacity:  capacity,
		overwrite: cfg.overwrite,
	}
	fill(r.storage, r.fill)
	fill(r.unwrap, r.fill)
	return r, nil
}

// Len returns the number of elements currently held.
func (r *Ring[E]) Len() int {
	return r.right - r.left
}

// Cap returns the fixed capacity.
func (r *Ring[E]) Cap() int {
	return r.capacity
}

// IsFull reports whether Len equals Cap. A zero-capacity ring is always full.
func (r *Ring[E]) IsFull() bool {
	return r.Len() == r.capacity
}

// AllowsOverwrite reports whether a full ring drops its oldest elements on
// further appends instead of failing.
func (r *Ring[E]) AllowsOverwrite() bool {
	return r.overwrite
}

// normalize restores 0 <= left < capacity by shifting both cursors.
func (r *Ring[E]) normalize() {
	if r.capacity == 0 {
		return
	}
	switch {
	case r.left >= r.capacity:
		r.left -= r.capacity
		r.right -= r.capacity
	case r.left < 0:
		r.left += r.capacity
		r.right += r.capacity
	}
}

// checkRoom fails when adding k elements would overflow a non-overwriting ring.
func (r *Ring[E]) checkRoom(k int) error {
	if !r.overwrite && r.Len()+k > r.capacity {
		return fmt.Errorf("adding %d to %d of %d elements: %w", k, r.Len(), r.capacity, ErrOverflow)
	}
	return nil
}

// Clear empties the ring and refills both arrays with the fill value
// (NaN for float scalars, zero otherwise). Nothing is reallocated.
func (r *Ring[E]) Clear() {
	r.left = 0
	r.right = 0
	fill(r.storage, r.fill)
	fill(r.unwrap, r.fill)
	r.dirty = true
}

// Append adds v at the right end. On a full ring the oldest element is
// dropped, or ErrOverflow is returned when overwrite is disabled.
func (r *Ring[E]) Append(v E) error {
	if r.capacity == 0 {
		return nil
	}
	if r.IsFull() {
		if !r.overwrite {
			return fmt.Errorf("append to full ring buffer: %w", ErrOverflow)
		}
		r.left++
	}

	r.dirty = true
	r.storage[r.right%r.capacity] = v
	r.right++
	r.normalize()
	return nil
}

// AppendLeft adds v at the left end. On a full ring the newest element is
// dropped, or ErrOverflow is returned when overwrite is disabled.
func (r *Ring[E]) AppendLeft(v E) error {
	if r.capacity == 0 {
		return nil
	}
	if r.IsFull() {
		if !r.overwrite {
			return fmt.Errorf("append to full ring buffer: %w", ErrOverflow)
		}
		r.right--
	}

	r.dirty = true
	r.left--
	r.normalize()
	r.storage[r.left] = v
	return nil
}

// Extend appends values in order at the right end. If values alone fill the
// ring, only its last Cap elements are kept.
func (r *Ring[E]) Extend(values []E) error {
	if r.capacity == 0 {
		return nil
	}
	k := len(values)
	if err := r.checkRoom(k); err != nil {
		return err
	}

	r.dirty = true
	n := r.capacity
	if k >= n {
		copy(r.storage, values[k-n:])
		r.left = 0
		r.right = n
		return nil
	}

	// Tail segment up to the end of storage, then the wrapped head segment.
	ri := r.right % n
	head := copy(r.storage[ri:], values)
	copy(r.storage, values[head:])

	r.right += k
	r.left = max(r.left, r.right-n)
	r.normalize()
	return nil
}

// ExtendLeft prepends values so that values[0] becomes the new front
// element and the existing contents follow values[len(values)-1]. If values
// alone fill the ring, only its first Cap elements are kept.
func (r *Ring[E]) ExtendLeft(values []E) error {
	if r.capacity == 0 {
		return nil
	}
	k := len(values)
	if err := r.checkRoom(k); err != nil {
		return err
	}

	r.dirty = true
	n := r.capacity
	if k >= n {
		copy(r.storage, values[:n])
		r.left = 0
		r.right = n
		return nil
	}

	r.left -= k
	r.normalize()
	head := copy(r.storage[r.left:], values)
	copy(r.storage, values[head:])

	r.right = min(r.right, r.left+n)
	return nil
}

// Pop removes and returns the rightmost (newest) element.
func (r *Ring[E]) Pop() (E, error) {
	if r.Len() == 0 {
		var zero E
		return zero, ErrEmpty
	}

	r.dirty = true
	r.right--
	r.normalize()
	return r.storage[r.right%r.capacity], nil
}

// PopLeft removes and returns the leftmost (oldest) element.
func (r *Ring[E]) PopLeft() (E, error) {
	if r.Len() == 0 {
		var zero E
		return zero, ErrEmpty
	}

	r.dirty = true
	v := r.storage[r.left]
	r.left++
	r.normalize()
	return v, nil
}
