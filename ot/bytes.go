package ot

import (
	"errors"
	"fmt"
)

// Reading bytes from a font's binary representation.
//
// All multi-byte quantities in TrueType fonts are big-endian. Decoding from a
// slice which is too short is a programming error and panics: table decoders
// check the lengths declared by the font before decoding fields.

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func u64(b []byte) uint64 {
	_ = b[7] // Bounds check hint to compiler
	return uint64(u32(b))<<32 | uint64(u32(b[4:]))
}

// --- Codecs ----------------------------------------------------------------

// Codec describes the fixed-size binary encoding of values of type T.
//
// Decoding a value consumes exactly Size() bytes from the front of a buffer and
// returns the value together with the unconsumed rest of the buffer. The rest is
// always a suffix of the input.
type Codec[T any] struct {
	size   int
	decode func([]byte) T
}

// MakeCodec creates a codec for values of encoded size `size`. The decode function
// will always be called with a slice of exactly `size` bytes.
func MakeCodec[T any](size int, decode func([]byte) T) Codec[T] {
	if size <= 0 {
		panic(fmt.Sprintf("ot: codec size must be positive, is %d", size))
	}
	return Codec[T]{size: size, decode: decode}
}

// Size returns the number of bytes of an encoded value.
func (c Codec[T]) Size() int {
	return c.size
}

// Decode decodes a value from the front of b and returns it, together with the
// remaining bytes. It panics if b holds fewer than Size() bytes.
func (c Codec[T]) Decode(b []byte) (T, []byte) {
	if len(b) < c.size {
		panic(fmt.Errorf("%w: need %d bytes, have %d", errBufferBounds, c.size, len(b)))
	}
	return c.decode(b[:c.size]), b[c.size:]
}

// Primitive codecs.
var (
	U8  = MakeCodec(1, func(b []byte) uint8 { return b[0] })
	U16 = MakeCodec(2, u16)
	U32 = MakeCodec(4, u32)
	U64 = MakeCodec(8, u64)
	I8  = MakeCodec(1, func(b []byte) int8 { return int8(b[0]) })
	I16 = MakeCodec(2, func(b []byte) int16 { return int16(u16(b)) })
	I32 = MakeCodec(4, func(b []byte) int32 { return int32(u32(b)) })
	I64 = MakeCodec(8, func(b []byte) int64 { return int64(u64(b)) })

	FixedCodec   = MakeCodec(4, func(b []byte) Fixed { return Fixed{Int: int16(u16(b)), Frac: u16(b[2:])} })
	F2Dot14Codec = MakeCodec(2, func(b []byte) F2Dot14 { return F2Dot14(int16(u16(b))) })
	TagCodec     = MakeCodec(4, func(b []byte) Tag { return Tag(u32(b)) })
	GlyphCodec   = MakeCodec(2, func(b []byte) GlyphIndex { return GlyphIndex(u16(b)) })
)

// Fixed is a signed 16.16 fixed-point number. It is used mainly for table versions.
type Fixed struct {
	Int  int16  // integer part
	Frac uint16 // fractional part, in units of 1/65536
}

// Float returns f as a floating point number.
func (f Fixed) Float() float64 {
	return float64(f.Int) + float64(f.Frac)/65536
}

// Raw returns the 32-bit representation of f, e.g. 0x00010000 for version 1.0.
func (f Fixed) Raw() uint32 {
	return uint32(uint16(f.Int))<<16 | uint32(f.Frac)
}

func (f Fixed) String() string {
	return fmt.Sprintf("%d.%04x", f.Int, f.Frac)
}

// F2Dot14 is a signed 2.14 fixed-point number, used for scale factors of
// composite glyph components.
type F2Dot14 int16

// Float returns f as a floating point number.
func (f F2Dot14) Float() float64 {
	return float64(f) / 16384
}

// --- Sequential decoding ---------------------------------------------------

// reader is a cursor over a byte segment. Record types decode their fields with
// it in declaration order. Fields whose length depends on a sibling field are read
// with readArray after the count field has been read; a variable-length tail has to
// be consumed last, with rest.
type reader struct {
	b []byte
}

func read[T any](r *reader, c Codec[T]) T {
	v, rest := c.Decode(r.b)
	r.b = rest
	return v
}

func readArray[T any](r *reader, c Codec[T], n int) DynArr[T] {
	size := n * c.Size()
	if n < 0 || size > len(r.b) {
		panic(fmt.Errorf("%w: array of %d×%d bytes exceeds %d", errBufferBounds, n, c.Size(), len(r.b)))
	}
	a := NewDynArr(r.b[:size], c)
	r.b = r.b[size:]
	return a
}

func (r *reader) skip(n int) {
	r.b = r.b[n:]
}

func (r *reader) len() int {
	return len(r.b)
}

// has reports if at least n more bytes are available.
func (r *reader) has(n int) bool {
	return n >= 0 && n <= len(r.b)
}

func (r *reader) rest() []byte {
	b := r.b
	r.b = r.b[len(r.b):]
	return b
}
