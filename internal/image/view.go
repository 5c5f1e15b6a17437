package image

import (
	"fmt"
	"image"
)

// View addresses one rectangle of a Buf. Coordinates are in buffer space.
//
// Views over disjoint rectangles of the same Buf may be written
// concurrently: a View cannot reach a byte outside its rectangle.
type View struct {
	buf  *Buf
	rect image.Rectangle
}

// Rect returns the rectangle covered by the view.
func (v *View) Rect() image.Rectangle { return v.rect }

// Len returns the number of samples in the view.
func (v *View) Len() int { return v.rect.Dx() * v.rect.Dy() }

// CopyOut copies the view's samples into dst, packed with a stride of
// Rect().Dx(). dst must hold at least Len() bytes.
func (v *View) CopyOut(dst []byte) {
	w := v.rect.Dx()
	if len(dst) < v.Len() {
		panic(fmt.Errorf("%w: copy out %d bytes into %d", ErrDataTooSmall, v.Len(), len(dst)))
	}
	for row, y := 0, v.rect.Min.Y; y < v.rect.Max.Y; row, y = row+1, y+1 {
		start := y*v.buf.stride + v.rect.Min.X
		copy(dst[row*w:(row+1)*w], v.buf.data[start:start+w])
	}
}

// CopyIn writes packed samples from src back into the view.
// src must hold at least Len() bytes.
func (v *View) CopyIn(src []byte) {
	w := v.rect.Dx()
	if len(src) < v.Len() {
		panic(fmt.Errorf("%w: copy in %d bytes from %d", ErrDataTooSmall, v.Len(), len(src)))
	}
	for row, y := 0, v.rect.Min.Y; y < v.rect.Max.Y; row, y = row+1, y+1 {
		start := y*v.buf.stride + v.rect.Min.X
		copy(v.buf.data[start:start+w], src[row*w:(row+1)*w])
	}
}
