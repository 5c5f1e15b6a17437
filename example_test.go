package wand_test

import (
	"fmt"
	"image"

	"github.com/gogpu/wand"
)

func Example() {
	// A dark square on a light background.
	ref := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			v := uint8(220)
			if x < 4 && y < 4 {
				v = 30
			}
			ref.Pix[y*ref.Stride+x] = v
		}
	}

	mask := wand.FillScanlineParallel(ref, image.Pt(1, 1), 64)
	fmt.Println(mask.Count(), mask.At(0, 0), mask.At(6, 6))
	// Output: 16 255 0
}

func ExampleSelector() {
	ref := image.NewGray(image.Rect(0, 0, 256, 1))
	for x := range 256 {
		ref.Pix[x] = uint8(x) //nolint:gosec // x < 256
	}

	s := wand.NewSelector(
		wand.WithAlgorithm(wand.NaiveParallel),
		wand.WithTileSize(16, 16),
	)
	defer s.Close()

	mask, stats := s.Select(ref, image.Pt(0, 0), 100)
	fmt.Println(stats.Algorithm, stats.Selected, mask.At(50, 0))
	// Output: naive-parallel 100 128
}
