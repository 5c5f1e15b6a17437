package wand

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNewMask(t *testing.T) {
	mask := newMask(image.Rect(0, 0, 100, 80))
	if mask.Width() != 100 || mask.Height() != 80 {
		t.Errorf("expected 100x80, got %dx%d", mask.Width(), mask.Height())
	}

	// All values should be 0
	if mask.At(50, 50) != 0 || mask.Count() != 0 {
		t.Errorf("expected empty mask, got At=%d Count=%d", mask.At(50, 50), mask.Count())
	}
	if len(mask.Pix()) != 8000 {
		t.Errorf("len(Pix()) = %d, want 8000", len(mask.Pix()))
	}
}

func TestMaskBounds(t *testing.T) {
	mask := newMask(image.Rect(10, 20, 30, 40))
	mask.buf.Set(0, 0, 9)

	if mask.At(10, 20) != 9 {
		t.Errorf("At(10, 20) = %d, want 9", mask.At(10, 20))
	}

	// Out of bounds should return 0
	for _, p := range []image.Point{{0, 0}, {9, 20}, {30, 20}, {10, 40}, {10, 19}} {
		if mask.At(p.X, p.Y) != 0 {
			t.Errorf("expected 0 for out of bounds %v", p)
		}
	}
}

func TestMaskEqual(t *testing.T) {
	a := newMask(image.Rect(0, 0, 4, 4))
	b := newMask(image.Rect(0, 0, 4, 4))
	if !a.Equal(b) {
		t.Error("zero masks should be equal")
	}

	b.buf.Set(1, 2, 7)
	if a.Equal(b) {
		t.Error("masks differ at (1,2)")
	}

	shifted := newMask(image.Rect(1, 0, 5, 4))
	if a.Equal(shifted) {
		t.Error("masks with different bounds compared equal")
	}

	empty := newMask(image.Rectangle{})
	if !empty.Equal(newMask(image.Rectangle{})) {
		t.Error("empty masks should be equal")
	}
	if empty.Count() != 0 || empty.Pix() != nil {
		t.Error("empty mask has pixels")
	}
}

func TestMaskGray(t *testing.T) {
	mask := newMask(image.Rect(5, 5, 8, 7))
	mask.buf.Set(2, 1, 128)

	g := mask.Gray()
	if g.Bounds() != mask.Bounds() {
		t.Errorf("Gray bounds = %v", g.Bounds())
	}
	if g.GrayAt(7, 6).Y != 128 {
		t.Errorf("GrayAt(7, 6) = %d, want 128", g.GrayAt(7, 6).Y)
	}

	// Gray shares the mask's storage.
	g.SetGray(5, 5, color.Gray{Y: 3})
	if mask.At(5, 5) != 3 {
		t.Error("Gray does not alias the mask")
	}

	if e := newMask(image.Rectangle{}).Gray(); !e.Bounds().Empty() {
		t.Errorf("Gray of empty mask = %v", e.Bounds())
	}
}

func TestMaskAlpha(t *testing.T) {
	ref := uniformGray(6, 6, 50)
	ref.Pix[5] = 200
	mask := FillScanline(ref, image.Pt(0, 0), 100)

	a := mask.Alpha()
	if a.Bounds() != mask.Bounds() {
		t.Errorf("Alpha bounds = %v", a.Bounds())
	}
	if a.AlphaAt(0, 0).A != 255 || a.AlphaAt(5, 0).A != 0 {
		t.Errorf("Alpha values: (0,0)=%d (5,0)=%d", a.AlphaAt(0, 0).A, a.AlphaAt(5, 0).A)
	}

	// Alpha is a copy.
	a.SetAlpha(0, 0, color.Alpha{A: 1})
	if mask.At(0, 0) != 255 {
		t.Error("Alpha aliases the mask")
	}

	// Compositing through the mask paints only selected pixels.
	dst := image.NewGray(ref.Bounds())
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, mask.Alpha(), image.Point{}, draw.Over)
	if dst.GrayAt(1, 1).Y != 255 || dst.GrayAt(5, 0).Y != 0 {
		t.Errorf("composite: (1,1)=%d (5,0)=%d", dst.GrayAt(1, 1).Y, dst.GrayAt(5, 0).Y)
	}
}
