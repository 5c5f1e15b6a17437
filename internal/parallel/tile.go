// Package parallel provides the tile-parallel flood fill for the magic wand.
//
// The image is divided into tiles (64x64 by default) that form the unit of
// both parallel work and write ownership. Key pieces:
//
//   - TileGrid maps pixels to tiles and tiles to clipped rectangles
//   - Process runs a fill kernel confined to one tile and reports growth
//     that crosses into neighbouring tiles
//   - Run drives bulk-synchronous rounds of Process on a WorkerPool until
//     no tile has pending seeds
//   - TilePool recycles the per-tile scratch buffers via sync.Pool
//   - DirtyRegion records which tiles the fill changed
//
// Thread safety: within a round each task receives views over its own tile
// rectangle only, so tasks never share mask bytes. Queues are touched only
// by the goroutine calling Run.
package parallel

import (
	"image"

	"github.com/gogpu/wand/internal/fill"
)

// Default tile dimensions.
const (
	// TileWidth is the default width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the default height of a tile in pixels.
	TileHeight = 64
)

// Size is a tile size in pixels.
type Size struct {
	W, H int
}

// DefaultTileSize is the 64x64 tile size.
var DefaultTileSize = Size{W: TileWidth, H: TileHeight}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// TileID identifies a tile by grid column and row. Neighbour ids computed
// at the grid edge fall outside the grid; TileGrid.Contains filters them.
type TileID struct {
	X, Y int
}

// Neighbour returns the id of the adjacent tile in direction d.
func (id TileID) Neighbour(d fill.Direction) TileID {
	o := d.Offset()
	return TileID{X: id.X + o.X, Y: id.Y + o.Y}
}

// less orders ids row-major.
func (id TileID) less(o TileID) bool {
	if id.Y != o.Y {
		return id.Y < o.Y
	}
	return id.X < o.X
}

// Tile is one cell of the grid. Rect is clipped to the image, so edge tiles
// may be smaller than the grid's tile size.
type Tile struct {
	ID   TileID
	Rect image.Rectangle
}

// Width returns the tile width in pixels.
func (t Tile) Width() int { return t.Rect.Dx() }

// Height returns the tile height in pixels.
func (t Tile) Height() int { return t.Rect.Dy() }
