package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DirtyRegion tracks which tiles a fill changed using an atomic bitmap.
// Tile workers mark their own tile concurrently; all methods are safe for
// concurrent use without external synchronization.
//
// The bitmap uses one bit per tile, packed into uint64 words (64 tiles per word).
type DirtyRegion struct {
	// words is the atomic bitmap where each bit represents a tile's dirty state.
	// Bit index = ty * tilesX + tx
	words []atomic.Uint64

	// tilesX is the number of tiles horizontally.
	tilesX int

	// tilesY is the number of tiles vertically.
	tilesY int
}

// NewDirtyRegion creates a tracker for a tilesX x tilesY grid with every
// tile clean. Returns nil if dimensions are invalid.
func NewDirtyRegion(tilesX, tilesY int) *DirtyRegion {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}

	totalTiles := tilesX * tilesY
	numWords := (totalTiles + 63) / 64

	return &DirtyRegion{
		words:  make([]atomic.Uint64, numWords),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Mark marks a tile as dirty with a lock-free atomic OR.
// Does nothing if id is outside the grid.
func (d *DirtyRegion) Mark(id TileID) {
	if id.X < 0 || id.X >= d.tilesX || id.Y < 0 || id.Y >= d.tilesY {
		return
	}
	idx := id.Y*d.tilesX + id.X
	d.words[idx/64].Or(1 << (idx & 63))
}

// IsEmpty returns true if no tiles are marked as dirty.
func (d *DirtyRegion) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of tiles marked as dirty.
func (d *DirtyRegion) Count() int {
	count := 0
	for i := range d.words {
		count += bits.OnesCount64(d.words[i].Load())
	}
	return count
}

// ForEachDirty calls fn for each dirty tile in row-major order.
func (d *DirtyRegion) ForEachDirty(fn func(id TileID)) {
	totalTiles := d.tilesX * d.tilesY

	for wordIdx := range d.words {
		word := d.words[wordIdx].Load()
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			tileIdx := wordIdx*64 + bitIdx
			if tileIdx >= totalTiles {
				break
			}
			fn(TileID{X: tileIdx % d.tilesX, Y: tileIdx / d.tilesX})
			word &^= 1 << bitIdx
		}
	}
}

// Bounds returns the union of the rectangles of all dirty tiles.
func (d *DirtyRegion) Bounds(g *TileGrid) image.Rectangle {
	var r image.Rectangle
	d.ForEachDirty(func(id TileID) {
		if t, ok := g.TileAt(id); ok {
			r = r.Union(t.Rect)
		}
	})
	return r
}
