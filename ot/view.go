package ot

import (
	"fmt"
	"iter"
)

// --- DynArr ----------------------------------------------------------------

// DynArr is a typed view over a byte range holding a known number of contiguous,
// fixed-size encodings of T. Elements are decoded on access only; the bytes are
// never copied.
type DynArr[T any] struct {
	data  []byte
	codec Codec[T]
}

// NewDynArr creates an array view on data. It panics if the length of data is not
// a multiple of the codec's size.
func NewDynArr[T any](data []byte, codec Codec[T]) DynArr[T] {
	if len(data)%codec.Size() != 0 {
		panic(fmt.Sprintf("ot: array of %d bytes is not a multiple of element size %d",
			len(data), codec.Size()))
	}
	return DynArr[T]{data: data, codec: codec}
}

// Len returns the number of elements of a.
func (a DynArr[T]) Len() int {
	if a.codec.size == 0 {
		return 0
	}
	return len(a.data) / a.codec.size
}

// At decodes element i without decoding any other element.
// It panics if i is out of range.
func (a DynArr[T]) At(i int) T {
	if i < 0 || i >= a.Len() {
		panic(fmt.Sprintf("ot: array index %d out of range [0:%d]", i, a.Len()))
	}
	v, _ := a.codec.Decode(a.data[i*a.codec.size:])
	return v
}

// Get is like At, but returns None for indices out of range.
func (a DynArr[T]) Get(i int) Option[T] {
	if i < 0 || i >= a.Len() {
		return None[T]()
	}
	return Some(a.At(i))
}

// SplitAt divides a into elements [0,k) and [k,Len). It panics if k is out of range.
func (a DynArr[T]) SplitAt(k int) (DynArr[T], DynArr[T]) {
	if k < 0 || k > a.Len() {
		panic(fmt.Sprintf("ot: split index %d out of range [0:%d]", k, a.Len()))
	}
	off := k * a.codec.size
	return DynArr[T]{data: a.data[:off], codec: a.codec},
		DynArr[T]{data: a.data[off:], codec: a.codec}
}

// Bytes returns the underlying bytes of a. Clients must treat them as read-only.
func (a DynArr[T]) Bytes() []byte {
	return a.data
}

// All iterates over index/element pairs in ascending order.
func (a DynArr[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, n := 0, a.Len(); i < n; i++ {
			if !yield(i, a.At(i)) {
				return
			}
		}
	}
}

// Values iterates over the elements of a in ascending order.
func (a DynArr[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, n := 0, a.Len(); i < n; i++ {
			if !yield(a.At(i)) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs in descending order.
func (a DynArr[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.Len() - 1; i >= 0; i-- {
			if !yield(i, a.At(i)) {
				return
			}
		}
	}
}

// Collect decodes all elements into a newly allocated slice.
func (a DynArr[T]) Collect() []T {
	s := make([]T, 0, a.Len())
	for v := range a.Values() {
		s = append(s, v)
	}
	return s
}

// BinarySearchFunc searches a sorted array for an element e with cmp(e) == 0.
// cmp must return a negative value for elements ordered before the target and a
// positive value for elements ordered after it.
//
// If found, BinarySearchFunc returns the index of the element and true. Otherwise it
// returns the position where the target would have to be inserted, and false.
func (a DynArr[T]) BinarySearchFunc(cmp func(T) int) (int, bool) {
	size := a.Len()
	if size == 0 {
		return 0, false
	}
	base := 0
	for size > 1 {
		half := size / 2
		mid := base + half
		if cmp(a.At(mid)) <= 0 {
			base = mid
		}
		size -= half
	}
	switch c := cmp(a.At(base)); {
	case c == 0:
		return base, true
	case c < 0:
		return base + 1, false
	}
	return base, false
}

// --- BufView ---------------------------------------------------------------

// BufView is a typed view over a byte range of unknown element count. It is used
// where the number of elements follows from program logic outside of the view,
// e.g. for the glyph ID array of a cmap format 4 subtable.
type BufView[T any] struct {
	data  []byte
	codec Codec[T]
}

// NewBufView creates a view on data.
func NewBufView[T any](data []byte, codec Codec[T]) BufView[T] {
	return BufView[T]{data: data, codec: codec}
}

// Has reports if element i lies within the underlying bytes.
func (v BufView[T]) Has(i int) bool {
	return i >= 0 && (i+1)*v.codec.size <= len(v.data)
}

// At decodes element i. It panics if element i is not within the underlying bytes.
func (v BufView[T]) At(i int) T {
	if !v.Has(i) {
		panic(fmt.Errorf("%w: view index %d exceeds %d bytes", errBufferBounds, i, len(v.data)))
	}
	x, _ := v.codec.Decode(v.data[i*v.codec.size:])
	return x
}

// Get is like At, but returns None if element i is not within the underlying bytes.
func (v BufView[T]) Get(i int) Option[T] {
	if !v.Has(i) {
		return None[T]()
	}
	return Some(v.At(i))
}

// SplitAt divides v at element boundary k.
func (v BufView[T]) SplitAt(k int) (BufView[T], BufView[T]) {
	off := k * v.codec.size
	if k < 0 || off > len(v.data) {
		panic(fmt.Sprintf("ot: split index %d exceeds %d bytes", k, len(v.data)))
	}
	return BufView[T]{data: v.data[:off], codec: v.codec},
		BufView[T]{data: v.data[off:], codec: v.codec}
}

// Bounded converts v to an array of n elements, if v holds enough bytes.
func (v BufView[T]) Bounded(n int) Option[DynArr[T]] {
	size := n * v.codec.size
	if n < 0 || size > len(v.data) {
		return None[DynArr[T]]()
	}
	return Some(NewDynArr(v.data[:size], v.codec))
}

// Bytes returns the underlying bytes of v. Clients must treat them as read-only.
func (v BufView[T]) Bytes() []byte {
	return v.data
}
