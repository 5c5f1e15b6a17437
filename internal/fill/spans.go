package fill

import (
	"fmt"
	"image"
)

// Span is a horizontal run [X1, X2] on row Y to be scanned for fillable
// pixels. Dy (+1 or -1) is the direction the span was spawned in.
type Span struct {
	X1, X2 int
	Y      int
	Dy     int
}

func (s Span) in(r image.Rectangle) bool {
	return s.X1 <= s.X2 && s.X1 >= r.Min.X && s.X2 < r.Max.X && s.Y >= r.Min.Y && s.Y < r.Max.Y
}

// Spans runs the scanline fill on p from seeds.
//
// Every run found on a row spawns a span on the next row in its direction
// and one on the previous row in the opposite direction, each covering the
// whole run. Runs that reach the left or right edge of p.Rect emit a one
// pixel span to that side; child spans on rows outside p.Rect are emitted
// up or down. Anything outside bounds is dropped. It returns the number of
// pixels it selected.
func Spans(p *Plane, c Criteria, bounds image.Rectangle, seeds []Span, emit Emit[Span]) int {
	stack := make([]Span, 0, len(seeds)+32)
	for _, s := range seeds {
		if !s.in(p.Rect) {
			panic(fmt.Errorf("%w: span %+v not in %v", ErrSeedOutside, s, p.Rect))
		}
		stack = append(stack, s)
	}

	push := func(s Span) {
		switch {
		case s.Y < bounds.Min.Y || s.Y >= bounds.Max.Y:
		case s.Y < p.Rect.Min.Y:
			emit(Up, s)
		case s.Y >= p.Rect.Max.Y:
			emit(Down, s)
		default:
			stack = append(stack, s)
		}
	}

	selected := 0
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.Y < p.Rect.Min.Y || s.Y >= p.Rect.Max.Y {
			continue
		}

		y := s.Y
		x := s.X1
		for x <= s.X2 {
			if !p.take(x, y, c) {
				x++
				continue
			}

			l, r := x, x
			for l > p.Rect.Min.X && p.take(l-1, y, c) {
				l--
			}
			for r < p.Rect.Max.X-1 && p.take(r+1, y, c) {
				r++
			}
			selected += r - l + 1

			if l == p.Rect.Min.X && l > bounds.Min.X {
				emit(Left, Span{X1: l - 1, X2: l - 1, Y: y, Dy: s.Dy})
			}
			if r == p.Rect.Max.X-1 && r < bounds.Max.X-1 {
				emit(Right, Span{X1: r + 1, X2: r + 1, Y: y, Dy: s.Dy})
			}

			push(Span{X1: l, X2: r, Y: y + s.Dy, Dy: s.Dy})
			push(Span{X1: l, X2: r, Y: y - s.Dy, Dy: -s.Dy})

			// r+1 is either outside the plane or already known unfillable.
			x = r + 2
		}
	}
	return selected
}
