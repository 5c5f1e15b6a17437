package fill

import (
	"image"

	intImage "github.com/gogpu/wand/internal/image"
)

// CriteriaAt builds the criteria for a fill seeded at seed. It reports
// false when the seed is outside ref.
func CriteriaAt(ref *intImage.Buf, seed image.Point, threshold uint8) (Criteria, bool) {
	if !ref.Contains(seed.X, seed.Y) {
		return Criteria{}, false
	}
	return Criteria{Seed: ref.Get(seed.X, seed.Y), Threshold: threshold}, true
}

// Naive fills mask from seed with the per-pixel kernel over the whole
// image. mask must be zero and have ref's size. It returns the number of
// selected pixels; an out-of-bounds seed selects nothing.
func Naive(ref, mask *intImage.Buf, seed image.Point, threshold uint8) int {
	c, ok := CriteriaAt(ref, seed, threshold)
	if !ok {
		return 0
	}
	p := WholePlane(ref, mask)
	return Points(p, c, p.Rect, []image.Point{seed}, nil)
}

// Scanline fills mask from seed with the span kernel over the whole image.
// It produces exactly the mask Naive produces.
func Scanline(ref, mask *intImage.Buf, seed image.Point, threshold uint8) int {
	c, ok := CriteriaAt(ref, seed, threshold)
	if !ok {
		return 0
	}
	p := WholePlane(ref, mask)
	return Spans(p, c, p.Rect, []Span{SeedSpan(seed)}, nil)
}

// SeedSpan is the degenerate span a scanline fill starts from.
func SeedSpan(seed image.Point) Span {
	return Span{X1: seed.X, X2: seed.X, Y: seed.Y, Dy: 1}
}
