// Package image provides the single-channel 8-bit pixel buffers used by the
// selection engine.
//
// A Buf is a row-major grid of intensity samples with an optional stride.
// A View restricts a Buf to one rectangle, checked when the View is made.
// Copies through a View never leave that rectangle, which is how concurrent
// tile workers are kept from touching each other's pixels.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than the width.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds reports an access outside a buffer or view. It is only
	// ever raised through a panic: an out-of-bounds access is a defect in the
	// caller, never something to clamp.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Buf is a single-channel 8-bit image buffer.
//
// Thread safety: concurrent reads are safe. Concurrent writes are safe only
// through Views with pairwise disjoint rectangles.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewBuf creates a zero-filled buffer with the given dimensions.
func NewBuf(width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Buf{
		data:   make([]byte, width*height),
		width:  width,
		height: height,
		stride: width,
	}, nil
}

// FromRaw creates a Buf over existing data without copying.
// The caller must keep data alive and unmodified for as long as the Buf is
// used as a read-only reference.
func FromRaw(data []byte, width, height, stride int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width {
		return nil, ErrInvalidStride
	}
	required := (height-1)*stride + width
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &Buf{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Width returns the image width in pixels.
func (b *Buf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *Buf) Height() int { return b.height }

// Stride returns the number of bytes per row.
func (b *Buf) Stride() int { return b.stride }

// Bounds returns the buffer rectangle, always anchored at the origin.
func (b *Buf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the raw pixel data slice.
func (b *Buf) Data() []byte { return b.data }

// RowBytes returns the pixels of row y.
// Returns nil if y is out of bounds.
func (b *Buf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width]
}

// Contains reports whether (x, y) lies inside the buffer.
func (b *Buf) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the sample at (x, y). It panics if (x, y) is outside the buffer.
func (b *Buf) Get(x, y int) uint8 {
	if !b.Contains(x, y) {
		panic(outOfBounds(x, y, b.Bounds()))
	}
	return b.data[y*b.stride+x]
}

// Set stores v at (x, y). It panics if (x, y) is outside the buffer.
func (b *Buf) Set(x, y int, v uint8) {
	if !b.Contains(x, y) {
		panic(outOfBounds(x, y, b.Bounds()))
	}
	b.data[y*b.stride+x] = v
}

// Clear sets all samples to zero.
func (b *Buf) Clear() {
	clear(b.data)
}

// Equal reports whether both buffers have the same size and samples.
// Stride padding is ignored.
func (b *Buf) Equal(o *Buf) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.height {
		if !bytes.Equal(b.RowBytes(y), o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// View returns a handle restricted to r. It panics if r is empty or not
// fully contained in the buffer.
func (b *Buf) View(r image.Rectangle) *View {
	if r.Empty() || !r.In(b.Bounds()) {
		panic(fmt.Errorf("%w: view %v outside %v", ErrOutOfBounds, r, b.Bounds()))
	}
	return &View{buf: b, rect: r}
}

func outOfBounds(x, y int, r image.Rectangle) error {
	return fmt.Errorf("%w: (%d,%d) outside %v", ErrOutOfBounds, x, y, r)
}
