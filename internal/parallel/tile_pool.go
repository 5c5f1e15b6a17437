package parallel

import "sync"

// Scratch is the local working copy of one tile: reference and mask
// samples packed with a stride equal to Width. Ref and Mask hold exactly
// Width*Height bytes each.
type Scratch struct {
	Width  int
	Height int
	Ref    []byte
	Mask   []byte
}

// TilePool provides reuse of Scratch buffers via sync.Pool.
//
// Full-size tiles share one pool; clipped edge tiles get a pool per size.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// full is the tile size served by fullPool.
	full Size

	// pools holds separate sync.Pool instances for each edge tile size.
	// Key format: (width << 16) | height
	pools sync.Map

	// fullPool is the dedicated pool for full-size tiles, the common case.
	fullPool sync.Pool
}

// NewTilePool creates a pool whose fast path serves tiles of the given size.
func NewTilePool(full Size) *TilePool {
	if !full.Valid() {
		full = DefaultTileSize
	}
	p := &TilePool{full: full}
	p.fullPool.New = func() any {
		return newScratch(full.W, full.H)
	}
	return p
}

func newScratch(width, height int) *Scratch {
	return &Scratch{
		Width:  width,
		Height: height,
		Ref:    make([]byte, width*height),
		Mask:   make([]byte, width*height),
	}
}

// Get retrieves a scratch buffer of the given size.
// Returns nil for non-positive dimensions.
//
// The contents are not cleared: a reused buffer still holds the bytes of
// the tile it last served. Callers overwrite both slices before reading.
func (p *TilePool) Get(width, height int) *Scratch {
	if width <= 0 || height <= 0 {
		return nil
	}

	if width == p.full.W && height == p.full.H {
		return p.fullPool.Get().(*Scratch)
	}

	pool := p.getOrCreatePool(poolKey(width, height), width, height)
	s := pool.Get().(*Scratch)
	if s.Width != width || s.Height != height {
		// clamped key collision on huge tiles
		return newScratch(width, height)
	}
	return s
}

// Put returns a scratch buffer to the pool. Nil is ignored.
func (p *TilePool) Put(s *Scratch) {
	if s == nil {
		return
	}

	if s.Width == p.full.W && s.Height == p.full.H {
		p.fullPool.Put(s)
		return
	}

	if pool, ok := p.pools.Load(poolKey(s.Width, s.Height)); ok {
		pool.(*sync.Pool).Put(s)
	}
	// If pool doesn't exist, let GC reclaim the buffer
}

// poolKey creates a unique key for a tile size.
// Width and height are clamped to 16-bit values to prevent overflow.
func poolKey(width, height int) uint32 {
	w := min(width, 0xFFFF)
	h := min(height, 0xFFFF)
	return uint32(w)<<16 | uint32(h) //nolint:gosec // values are clamped above
}

// getOrCreatePool gets or creates a sync.Pool for the given dimensions.
func (p *TilePool) getOrCreatePool(key uint32, width, height int) *sync.Pool {
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return newScratch(width, height)
		},
	}

	// Try to store; if another goroutine beat us, use theirs
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
