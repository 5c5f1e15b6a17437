package wand

import (
	"image"

	intImage "github.com/gogpu/wand/internal/image"
)

// Mask is a graded selection mask.
// Values range from 0 (not selected) to 255 (fully selected).
//
// A Mask is created by a fill and owned by the caller; wand keeps no
// reference to it after the fill returns.
type Mask struct {
	rect image.Rectangle
	buf  *intImage.Buf // nil when rect is empty
}

// newMask allocates a zero mask covering rect.
func newMask(rect image.Rectangle) *Mask {
	m := &Mask{rect: rect}
	if !rect.Empty() {
		buf, err := intImage.NewBuf(rect.Dx(), rect.Dy())
		if err != nil {
			panic(err)
		}
		m.buf = buf
	}
	return m
}

// Bounds returns the mask rectangle, equal to the reference image's.
func (m *Mask) Bounds() image.Rectangle { return m.rect }

// Width returns the mask width.
func (m *Mask) Width() int { return m.rect.Dx() }

// Height returns the mask height.
func (m *Mask) Height() int { return m.rect.Dy() }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if !image.Pt(x, y).In(m.rect) {
		return 0
	}
	return m.buf.Get(x-m.rect.Min.X, y-m.rect.Min.Y)
}

// Pix returns the mask values in row-major order with a stride of Width.
// The slice aliases the mask. Returns nil for an empty mask.
func (m *Mask) Pix() []uint8 {
	if m.buf == nil {
		return nil
	}
	return m.buf.Data()
}

// Count returns the number of selected (non-zero) pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix() {
		if v > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both masks have the same bounds and values.
func (m *Mask) Equal(o *Mask) bool {
	if m.rect != o.rect {
		return false
	}
	if m.buf == nil || o.buf == nil {
		return m.buf == o.buf
	}
	return m.buf.Equal(o.buf)
}

// Gray returns the mask as an *image.Gray sharing the mask's pixels.
func (m *Mask) Gray() *image.Gray {
	if m.buf == nil {
		return image.NewGray(m.rect)
	}
	return m.buf.Gray(m.rect)
}

// Alpha returns a copy of the mask as an alpha channel, ready to be used
// as the mask argument of draw.DrawMask.
func (m *Mask) Alpha() *image.Alpha {
	a := image.NewAlpha(m.rect)
	copy(a.Pix, m.Pix())
	return a
}
