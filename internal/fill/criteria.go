// Package fill implements the flood fill kernels behind the magic wand.
//
// Two kernels are provided: Points, a per-pixel fill driven by an explicit
// stack, and Spans, a scanline fill that works on horizontal runs. Both run
// on a Plane, a packed copy (or direct wrap) of one rectangle of the
// reference and mask images. Growth that leaves the plane but stays within
// the global bounds is handed to an Emit callback; that is how tile workers
// hand work to their neighbours. A plane covering the whole image never
// emits, which is what the serial fills rely on.
package fill

// Criteria decides inclusion and the graded selection value of a pixel.
type Criteria struct {
	// Seed is the intensity at the seed pixel.
	Seed uint8

	// Threshold is the exclusive upper bound on |pixel - Seed|.
	Threshold uint8
}

// Select returns the selection value for a reference sample v and whether
// v is includable. Selected values are always in [1, 255]; a threshold of
// zero rejects everything.
func (c Criteria) Select(v uint8) (uint8, bool) {
	d := int(v) - int(c.Seed)
	if d < 0 {
		d = -d
	}
	if d >= int(c.Threshold) {
		return 0, false
	}
	return uint8(255 - d*255/int(c.Threshold)), true //nolint:gosec // d < Threshold keeps the result in [1, 255]
}
