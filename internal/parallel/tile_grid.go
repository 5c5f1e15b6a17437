package parallel

import "image"

// TileGrid divides an image into tiles.
//
// Edge tiles are clipped when the image is not evenly divisible by the tile
// size. Tile rectangles are computed on demand; the grid holds no pixel data.
type TileGrid struct {
	// size is the nominal tile size.
	size Size

	// tilesX is the number of tiles horizontally.
	tilesX int

	// tilesY is the number of tiles vertically.
	tilesY int

	// width is the image width in pixels.
	width int

	// height is the image height in pixels.
	height int
}

// NewTileGrid creates a grid covering a width x height image.
// An invalid size falls back to DefaultTileSize. Non-positive image
// dimensions give an empty grid.
func NewTileGrid(width, height int, size Size) *TileGrid {
	if !size.Valid() {
		size = DefaultTileSize
	}
	if width <= 0 || height <= 0 {
		return &TileGrid{size: size}
	}

	return &TileGrid{
		size:   size,
		tilesX: (width + size.W - 1) / size.W,
		tilesY: (height + size.H - 1) / size.H,
		width:  width,
		height: height,
	}
}

// Contains reports whether id addresses a tile of the grid.
func (g *TileGrid) Contains(id TileID) bool {
	return id.X >= 0 && id.X < g.tilesX && id.Y >= 0 && id.Y < g.tilesY
}

// TileAt returns the tile with the given id.
// Returns false if id is outside the grid.
func (g *TileGrid) TileAt(id TileID) (Tile, bool) {
	if !g.Contains(id) {
		return Tile{}, false
	}
	r := image.Rect(
		id.X*g.size.W, id.Y*g.size.H,
		(id.X+1)*g.size.W, (id.Y+1)*g.size.H,
	).Intersect(g.Bounds())
	return Tile{ID: id, Rect: r}, true
}

// TileAtPixel returns the id of the tile containing pixel (px, py).
// Returns false if the pixel is outside the image.
func (g *TileGrid) TileAtPixel(px, py int) (TileID, bool) {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return TileID{}, false
	}
	return TileID{X: px / g.size.W, Y: py / g.size.H}, true
}

// Bounds returns the image rectangle covered by the grid.
func (g *TileGrid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// TileSize returns the nominal tile size.
func (g *TileGrid) TileSize() Size {
	return g.size
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return g.tilesX * g.tilesY
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}
