package image

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// ErrUnknownGrayMode is returned by ParseGrayMode for unrecognized names.
var ErrUnknownGrayMode = errors.New("image: unknown gray mode")

// GrayMode selects how colour images are reduced to one intensity channel.
type GrayMode uint8

const (
	// GrayLuma uses the standard library's Rec. 601 luma weights.
	GrayLuma GrayMode = iota

	// GrayLightness uses CIE L* (perceptual lightness), scaled to 0-255.
	GrayLightness
)

// String returns the flag-friendly name of the mode.
func (m GrayMode) String() string {
	switch m {
	case GrayLuma:
		return "luma"
	case GrayLightness:
		return "lightness"
	default:
		return "unknown"
	}
}

// ParseGrayMode parses the names produced by String.
func ParseGrayMode(s string) (GrayMode, error) {
	switch s {
	case "luma":
		return GrayLuma, nil
	case "lightness":
		return GrayLightness, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGrayMode, s)
	}
}

// ToGray reduces img to a single channel. A *image.Gray passes through
// unchanged in luma mode.
func ToGray(img image.Image, mode GrayMode) *image.Gray {
	bounds := img.Bounds()

	if mode == GrayLightness {
		return lightness(img)
	}

	if g, ok := img.(*image.Gray); ok {
		return g
	}
	dst := image.NewGray(bounds)
	xdraw.Draw(dst, bounds, img, bounds.Min, xdraw.Src)
	return dst
}

func lightness(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(bounds.Min.X, y):]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// fully transparent
				row[x-bounds.Min.X] = 0
				continue
			}
			l, _, _ := c.Lab()
			l = math.Max(0, math.Min(1, l))
			row[x-bounds.Min.X] = uint8(math.Round(l * 255))
		}
	}
	return dst
}

// Scale resamples g by factor using Catmull-Rom interpolation.
// A factor of 1 (or a result smaller than one pixel) returns g unchanged.
func Scale(g *image.Gray, factor float64) *image.Gray {
	if factor == 1 || factor <= 0 {
		return g
	}
	src := g.Bounds()
	w := int(math.Round(float64(src.Dx()) * factor))
	h := int(math.Round(float64(src.Dy()) * factor))
	if w < 1 || h < 1 {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), g, src, xdraw.Src, nil)
	return dst
}

// FromGray wraps the pixels of g in a Buf without copying. The buffer is
// anchored at the origin regardless of g.Rect.Min.
func FromGray(g *image.Gray) (*Buf, error) {
	r := g.Rect
	if r.Empty() {
		return nil, ErrInvalidDimensions
	}
	return FromRaw(g.Pix, r.Dx(), r.Dy(), g.Stride)
}

// Gray exposes the buffer as an *image.Gray covering rect, sharing the
// pixel data. rect must have the buffer's size.
func (b *Buf) Gray(rect image.Rectangle) *image.Gray {
	if rect.Dx() != b.width || rect.Dy() != b.height {
		panic(fmt.Errorf("%w: rect %v does not match %dx%d", ErrInvalidDimensions, rect, b.width, b.height))
	}
	return &image.Gray{Pix: b.data, Stride: b.stride, Rect: rect}
}
