package fill

import (
	"fmt"
	"image"
)

// neighbours lists the 4-connected steps in push order.
var neighbours = [...]Direction{Left, Right, Up, Down}

// Points runs the per-pixel fill on p from seeds. Neighbours outside bounds
// are dropped; neighbours inside bounds but outside p.Rect go to emit.
// It returns the number of pixels it selected.
func Points(p *Plane, c Criteria, bounds image.Rectangle, seeds []image.Point, emit Emit[image.Point]) int {
	stack := make([]image.Point, 0, len(seeds)+64)
	for _, s := range seeds {
		if !s.In(p.Rect) {
			panic(fmt.Errorf("%w: %v not in %v", ErrSeedOutside, s, p.Rect))
		}
		stack = append(stack, s)
	}

	selected := 0
	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.take(pt.X, pt.Y, c) {
			continue
		}
		selected++

		for _, d := range neighbours {
			n := pt.Add(d.Offset())
			switch {
			case !n.In(bounds):
			case n.In(p.Rect):
				stack = append(stack, n)
			default:
				emit(d, n)
			}
		}
	}
	return selected
}
