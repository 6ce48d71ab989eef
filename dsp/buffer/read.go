package buffer

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"slices"
	"unsafe"
)

// unwrapInto appends the logical contents, oldest first, to dst.
func (r *Ring[E]) unwrapInto(dst []E) []E {
	dst = append(dst, r.storage[r.left:min(r.right, r.capacity)]...)
	return append(dst, r.storage[:max(r.right-r.capacity, 0)]...)
}

// Unwrap returns a newly allocated copy of the contents, oldest first.
func (r *Ring[E]) Unwrap() []E {
	return r.unwrapInto(make([]E, 0, r.Len()))
}

// refresh rewrites the unwrap buffer in place if storage changed since the
// last refresh.
func (r *Ring[E]) refresh() {
	if !r.dirty {
		return
	}
	r.unwrapInto(r.unwrap[:0])
	r.dirty = false
}

// Contiguous returns the contents, oldest first, as one slice.
//
// When the ring is full the returned slice is the ring's unwrap buffer: its
// address is the same on every call, and writes to it modify that buffer.
// It stays valid until the next mutating call. Otherwise a fresh copy is
// returned, as by Unwrap.
func (r *Ring[E]) Contiguous() []E {
	if r.IsFull() {
		r.refresh()
		return r.unwrap
	}
	return r.Unwrap()
}

// Slice returns Contiguous()[start:stop]. Negative bounds count from the end
// and bounds are clamped to [0, Len()], so an inverted range yields an empty
// slice. On a full ring the result aliases the unwrap buffer; its capacity is
// capped at stop so appending to it never writes into the buffer.
func (r *Ring[E]) Slice(start, stop int) []E {
	n := r.Len()
	start = clampBound(start, n)
	stop = clampBound(stop, n)

	data := r.Contiguous()
	if stop <= start {
		return data[:0:0]
	}
	return data[start:stop:stop]
}

func clampBound(b, n int) int {
	if b < 0 {
		b += n
	}
	return min(max(b, 0), n)
}

// physical maps a validated logical index to its storage slot.
func (r *Ring[E]) physical(i int) int {
	if i < 0 {
		return (r.right + i) % r.capacity
	}
	return (r.left + i) % r.capacity
}

// checkIndices returns a *RangeError listing every index outside
// [-Len(), Len()), sorted ascending. An empty ring rejects any lookup.
func (r *Ring[E]) checkIndices(indices ...int) error {
	n := r.Len()
	bad := []int{}
	for _, i := range indices {
		if i < -n || i >= n {
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 && n > 0 {
		return nil
	}
	slices.Sort(bad)
	return &RangeError{Indices: bad, Length: n}
}

// At returns the element at logical index i; negative i counts from the
// newest element. It reads straight from storage.
func (r *Ring[E]) At(i int) (E, error) {
	if err := r.checkIndices(i); err != nil {
		var zero E
		return zero, err
	}
	return r.storage[r.physical(i)], nil
}

// Gather returns the elements at the given logical indices, in the order
// requested. If any index is out of range none are returned and the error
// lists all offending indices.
func (r *Ring[E]) Gather(indices []int) ([]E, error) {
	if err := r.checkIndices(indices...); err != nil {
		return nil, err
	}
	out := make([]E, len(indices))
	for j, i := range indices {
		out[j] = r.storage[r.physical(i)]
	}
	return out, nil
}

// Select is the dynamically typed form of Gather. index may be any integer
// value or a slice or array of integers; other types yield ErrIndexType.
// A single integer gives a one-element result.
func (r *Ring[E]) Select(index any) ([]E, error) {
	indices, err := toIndices(index)
	if err != nil {
		return nil, err
	}
	return r.Gather(indices)
}

func toIndices(index any) ([]int, error) {
	v := reflect.ValueOf(index)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: got nil", ErrIndexType)
	}

	switch {
	case isIntegerKind(v.Kind()):
		return []int{toInt(v)}, nil
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		if !isIntegerKind(v.Type().Elem().Kind()) {
			return nil, fmt.Errorf("%w: got %s", ErrIndexType, v.Type())
		}
		out := make([]int, v.Len())
		for i := range out {
			out[i] = toInt(v.Index(i))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrIndexType, v.Type())
	}
}

func toInt(v reflect.Value) int {
	if v.CanInt() {
		return int(v.Int())
	}
	u := v.Uint()
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

// Values iterates over the contents, oldest first. Each iteration
// materializes the ring once when it starts, as Contiguous does.
func (r *Ring[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range r.Contiguous() {
			if !yield(v) {
				return
			}
		}
	}
}

// All iterates over logical index and element pairs, oldest first.
func (r *Ring[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i, v := range r.Contiguous() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// ElementType returns the element type E.
func (r *Ring[E]) ElementType() reflect.Type {
	return r.elemType
}

// Shape returns the logical shape: Len() followed by the array dimensions
// of E, e.g. [3 2] for a ring of three [2]float64 elements.
func (r *Ring[E]) Shape() []int {
	return append([]int{r.Len()}, r.dims...)
}

// CurrentAddress returns the address of the slice Contiguous returns now.
// It equals UnwrapAddress exactly when the ring is full.
func (r *Ring[E]) CurrentAddress() uintptr {
	return sliceAddress(r.Contiguous())
}

// UnwrapAddress returns the fixed address of the unwrap buffer.
func (r *Ring[E]) UnwrapAddress() uintptr {
	return sliceAddress(r.unwrap)
}

func sliceAddress[E any](s []E) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}

func (r *Ring[E]) String() string {
	return fmt.Sprintf("<RingBuffer of %v>", r.Unwrap())
}
