package image

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestParseGrayMode(t *testing.T) {
	for _, m := range []GrayMode{GrayLuma, GrayLightness} {
		got, err := ParseGrayMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseGrayMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseGrayMode("hsv"); !errors.Is(err, ErrUnknownGrayMode) {
		t.Errorf("ParseGrayMode(hsv) = %v, want ErrUnknownGrayMode", err)
	}
	if GrayMode(9).String() != "unknown" {
		t.Errorf("String() of invalid mode = %q", GrayMode(9).String())
	}
}

func TestToGray_Luma(t *testing.T) {
	g := testGray(4, 4)
	if ToGray(g, GrayLuma) != g {
		t.Error("a gray image should pass through unchanged")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{G: 255, A: 255})
	rgba.Set(2, 0, color.RGBA{R: 90, G: 90, B: 90, A: 255})

	got := ToGray(rgba, GrayLuma)
	want := []uint8{
		color.GrayModel.Convert(color.RGBA{R: 255, A: 255}).(color.Gray).Y,
		color.GrayModel.Convert(color.RGBA{G: 255, A: 255}).(color.Gray).Y,
		90,
	}
	for x, w := range want {
		if got.GrayAt(x, 0).Y != w {
			t.Errorf("luma(%d) = %d, want %d", x, got.GrayAt(x, 0).Y, w)
		}
	}
}

func TestToGray_Lightness(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.NRGBA{A: 255})
	img.Set(1, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.Set(2, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	img.Set(3, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	got := ToGray(img, GrayLightness)
	if got.GrayAt(0, 0).Y != 0 {
		t.Errorf("black lightness = %d, want 0", got.GrayAt(0, 0).Y)
	}
	if got.GrayAt(3, 0).Y != 255 {
		t.Errorf("white lightness = %d, want 255", got.GrayAt(3, 0).Y)
	}
	if !(got.GrayAt(1, 0).Y < got.GrayAt(2, 0).Y) {
		t.Errorf("lightness not monotonic: %d, %d", got.GrayAt(1, 0).Y, got.GrayAt(2, 0).Y)
	}

	// Lightness always converts, even gray input.
	g := testGray(2, 2)
	if ToGray(g, GrayLightness) == g {
		t.Error("lightness mode returned its input")
	}
}

func TestScale(t *testing.T) {
	g := testGray(10, 6)
	if Scale(g, 1) != g {
		t.Error("Scale(1) should return its input")
	}
	if Scale(g, 0) != g || Scale(g, -2) != g {
		t.Error("non-positive factors should return the input")
	}
	if Scale(g, 0.01) != g {
		t.Error("a sub-pixel result should return the input")
	}

	up := Scale(g, 2)
	if up.Bounds() != image.Rect(0, 0, 20, 12) {
		t.Errorf("Scale(2) bounds = %v", up.Bounds())
	}
	down := Scale(g, 0.5)
	if down.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Errorf("Scale(0.5) bounds = %v", down.Bounds())
	}
}

func TestFromGray(t *testing.T) {
	full := testGray(16, 16)
	sub := full.SubImage(image.Rect(4, 2, 10, 7)).(*image.Gray)

	b, err := FromGray(sub)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 6 || b.Height() != 5 || b.Stride() != 16 {
		t.Errorf("FromGray: %dx%d stride %d", b.Width(), b.Height(), b.Stride())
	}
	if b.Get(0, 0) != sub.GrayAt(4, 2).Y || b.Get(5, 4) != sub.GrayAt(9, 6).Y {
		t.Error("FromGray is not anchored at the sub-image origin")
	}

	if _, err := FromGray(image.NewGray(image.Rect(3, 3, 3, 8))); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromGray(empty) = %v, want ErrInvalidDimensions", err)
	}
}

func TestBuf_Gray(t *testing.T) {
	b, _ := NewBuf(3, 2)
	b.Set(2, 1, 42)

	g := b.Gray(image.Rect(10, 20, 13, 22))
	if g.GrayAt(12, 21).Y != 42 {
		t.Errorf("GrayAt(12, 21) = %d, want 42", g.GrayAt(12, 21).Y)
	}

	// Shared storage.
	g.SetGray(10, 20, color.Gray{Y: 9})
	if b.Get(0, 0) != 9 {
		t.Error("Gray does not share the buffer")
	}

	defer func() {
		if recover() == nil {
			t.Error("Gray with a mismatched rect should panic")
		}
	}()
	b.Gray(image.Rect(0, 0, 2, 2))
}
