package parallel

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/wand/internal/fill"
	intImage "github.com/gogpu/wand/internal/image"
)

// Config configures a parallel fill.
type Config struct {
	// TileSize is the tile size; invalid sizes fall back to DefaultTileSize.
	TileSize Size

	// Pool runs the tasks of each round. Required.
	Pool *WorkerPool

	// Logger receives per-round debug records. Nil discards them.
	Logger *slog.Logger
}

// Stats describes how a parallel fill ran.
type Stats struct {
	// Workers is the size of the pool that ran the tasks.
	Workers int

	// Rounds is the number of synchronous rounds.
	Rounds int

	// Tasks is the number of tile tasks over all rounds.
	Tasks int

	// Propagations is the number of seeds handed between tiles.
	Propagations int

	// Dropped is the number of seeds addressed off the grid.
	Dropped int

	// Selected is the number of pixels selected.
	Selected int

	// DirtyTiles is the number of tiles whose mask changed.
	DirtyTiles int

	// DirtyRect is the union of the dirty tiles' rectangles.
	DirtyRect image.Rectangle

	// Processing is the time spent inside rounds, merging the time spent
	// building the next round's queue.
	Processing time.Duration
	Merging    time.Duration
}

// Run fills mask from seed with kernel, one tile task per pending tile per
// round, until no tile has pending seeds. home is the seed pixel; seed is
// the kernel's initial seed entry. mask must be zero and have ref's size.
//
// The result equals the serial fill's for any tile size, worker count or
// scheduling: a tile task only writes its own rectangle and the kernels'
// output depends only on the reference image.
func Run[T any](cfg Config, ref, mask *intImage.Buf, c fill.Criteria, home image.Point, seed T, kernel Kernel[T]) Stats {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if !cfg.Pool.IsRunning() {
		panic(fmt.Errorf("parallel: fill: %w", ErrPoolClosed))
	}

	grid := NewTileGrid(ref.Width(), ref.Height(), cfg.TileSize)
	homeID, ok := grid.TileAtPixel(home.X, home.Y)
	if !ok {
		panic(fmt.Errorf("%w: seed %v outside %v", intImage.ErrOutOfBounds, home, grid.Bounds()))
	}
	logger.Debug("wand: tiling",
		slog.Int("tiles", grid.TileCount()),
		slog.Int("tiles_x", grid.TilesX()),
		slog.Int("tiles_y", grid.TilesY()),
		slog.Int("workers", cfg.Pool.Workers()))

	scratch := NewTilePool(grid.TileSize())
	dirty := NewDirtyRegion(grid.TilesX(), grid.TilesY())
	global := grid.Bounds()

	cur, next := NewQueue[T](), NewQueue[T]()
	cur.Push(homeID, seed)

	stats := Stats{Workers: cfg.Pool.Workers()}
	for cur.Len() > 0 {
		start := time.Now()

		ids := cur.Tiles()
		results := make([]Result[T], len(ids))
		work := make([]func(), len(ids))
		for i, id := range ids {
			tile, ok := grid.TileAt(id)
			if !ok {
				panic(fmt.Errorf("%w: tile %v outside %dx%d grid", intImage.ErrOutOfBounds, id, grid.TilesX(), grid.TilesY()))
			}
			job := Job[T]{
				Ref:      ref.View(tile.Rect),
				Mask:     mask.View(tile.Rect),
				Seeds:    cur.Seeds(id),
				Criteria: c,
				Tile:     tile,
				Global:   global,
			}
			work[i] = func() {
				results[i] = Process(job, kernel, scratch)
				if results[i].Selected > 0 {
					dirty.Mark(id)
				}
			}
		}

		if err := cfg.Pool.ExecuteAll(work); err != nil {
			panic(fmt.Errorf("parallel: round %d: %w", stats.Rounds, err))
		}
		stats.Processing += time.Since(start)
		start = time.Now()

		next.Reset()
		for _, r := range results {
			stats.Selected += r.Selected
			merged, dropped := next.Merge(grid, r.Out)
			stats.Propagations += merged
			stats.Dropped += dropped
		}
		cur, next = next, cur

		stats.Rounds++
		stats.Tasks += len(ids)
		stats.Merging += time.Since(start)

		logger.Debug("wand: round done",
			slog.Int("round", stats.Rounds),
			slog.Int("tasks", len(ids)),
			slog.Int("pending_tiles", cur.Len()),
			slog.Int("pending_seeds", cur.SeedCount()))
	}

	if !dirty.IsEmpty() {
		stats.DirtyTiles = dirty.Count()
		stats.DirtyRect = dirty.Bounds(grid)
	}
	return stats
}
