package fill

import (
	"errors"
	"fmt"
	"image"

	intImage "github.com/gogpu/wand/internal/image"
)

// ErrSeedOutside is raised (via panic) when a kernel is seeded outside its
// plane. Seeds are routed to planes by construction, so this is a defect.
var ErrSeedOutside = errors.New("fill: seed outside plane")

// Direction names the side of a plane that growth left through.
type Direction uint8

const (
	// Left is towards smaller x.
	Left Direction = iota
	// Right is towards larger x.
	Right
	// Up is towards smaller y.
	Up
	// Down is towards larger y.
	Down
)

// Offset returns the unit step for the direction.
func (d Direction) Offset() image.Point {
	switch d {
	case Left:
		return image.Point{X: -1}
	case Right:
		return image.Point{X: 1}
	case Up:
		return image.Point{Y: -1}
	default:
		return image.Point{Y: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Emit receives growth that crossed the plane's edge in direction d.
type Emit[T any] func(d Direction, seed T)

// Plane is the working area of a kernel: reference and mask samples for
// Rect, addressed in image coordinates.
type Plane struct {
	Rect image.Rectangle

	Ref       []uint8
	RefStride int

	Mask       []uint8
	MaskStride int
}

// WholePlane wraps ref and mask directly, without copying. Writes go
// straight to mask.
func WholePlane(ref, mask *intImage.Buf) *Plane {
	if ref.Width() != mask.Width() || ref.Height() != mask.Height() {
		panic(fmt.Errorf("%w: reference %v, mask %v", intImage.ErrInvalidDimensions, ref.Bounds(), mask.Bounds()))
	}
	return &Plane{
		Rect:       ref.Bounds(),
		Ref:        ref.Data(),
		RefStride:  ref.Stride(),
		Mask:       mask.Data(),
		MaskStride: mask.Stride(),
	}
}

func (p *Plane) refAt(x, y int) uint8 {
	return p.Ref[(y-p.Rect.Min.Y)*p.RefStride+x-p.Rect.Min.X]
}

func (p *Plane) maskIndex(x, y int) int {
	return (y-p.Rect.Min.Y)*p.MaskStride + x - p.Rect.Min.X
}

// take marks (x, y) if it is unmarked and includable and reports whether
// it did.
func (p *Plane) take(x, y int, c Criteria) bool {
	i := p.maskIndex(x, y)
	if p.Mask[i] > 0 {
		return false
	}
	v, ok := c.Select(p.refAt(x, y))
	if !ok {
		return false
	}
	p.Mask[i] = v
	return true
}
