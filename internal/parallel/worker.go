package parallel

import (
	"image"

	"github.com/gogpu/wand/internal/fill"
	intImage "github.com/gogpu/wand/internal/image"
)

// Kernel is a fill kernel: fill.Points or fill.Spans.
type Kernel[T any] func(p *fill.Plane, c fill.Criteria, bounds image.Rectangle, seeds []T, emit fill.Emit[T]) int

// Job is one tile task of a round.
type Job[T any] struct {
	// Ref is the tile's window on the reference image. Only read.
	Ref *intImage.View

	// Mask is the tile's window on the shared mask. The only way the task
	// can write mask bytes.
	Mask *intImage.View

	// Seeds are the points or spans entering the tile this round.
	Seeds []T

	Criteria fill.Criteria

	// Tile is the tile being processed; Tile.Rect equals the views' rect.
	Tile Tile

	// Global is the whole image rectangle. Growth past it is dropped.
	Global image.Rectangle
}

// Result is what a task hands back to the orchestrator.
type Result[T any] struct {
	Tile     TileID
	Out      Propagation[T]
	Selected int
}

// Process runs kernel on job's tile. It copies the tile into a pooled
// scratch buffer, fills locally, turns growth across the tile edge into
// propagation entries for the neighbouring tiles, and writes the scratch
// mask back through job.Mask.
func Process[T any](job Job[T], kernel Kernel[T], scratch *TilePool) Result[T] {
	w, h := job.Tile.Width(), job.Tile.Height()
	buf := scratch.Get(w, h)
	defer scratch.Put(buf)

	// Pooled scratch is not cleared; these copies overwrite every byte.
	job.Ref.CopyOut(buf.Ref)
	job.Mask.CopyOut(buf.Mask)

	plane := &fill.Plane{
		Rect:       job.Tile.Rect,
		Ref:        buf.Ref,
		RefStride:  w,
		Mask:       buf.Mask,
		MaskStride: w,
	}

	out := make(Propagation[T], 4)
	selected := kernel(plane, job.Criteria, job.Global, job.Seeds, func(d fill.Direction, seed T) {
		id := job.Tile.ID.Neighbour(d)
		out[id] = append(out[id], seed)
	})

	if selected > 0 {
		job.Mask.CopyIn(buf.Mask)
	}

	return Result[T]{Tile: job.Tile.ID, Out: out, Selected: selected}
}

// ProcessPoints runs the per-pixel kernel on one tile.
func ProcessPoints(job Job[image.Point], scratch *TilePool) Result[image.Point] {
	return Process(job, fill.Points, scratch)
}

// ProcessSpans runs the scanline kernel on one tile.
func ProcessSpans(job Job[fill.Span], scratch *TilePool) Result[fill.Span] {
	return Process(job, fill.Spans, scratch)
}
