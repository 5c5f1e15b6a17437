package wand

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/wand/internal/fill"
	intImage "github.com/gogpu/wand/internal/image"
	"github.com/gogpu/wand/internal/parallel"
)

// Stats describes one fill. It is diagnostic output only.
type Stats struct {
	// Algorithm is the algorithm that ran.
	Algorithm Algorithm

	// Selected is the number of pixels with a non-zero mask value.
	Selected int

	// Workers is the size of the worker pool (parallel only).
	Workers int

	// Rounds, Tasks and Propagations are zero for serial algorithms.
	// Rounds is the number of synchronous rounds, Tasks the number of tile
	// tasks over all rounds and Propagations the number of seeds handed
	// from one tile to another.
	Rounds       int
	Tasks        int
	Propagations int

	// DirtyTiles is the number of tiles whose mask changed (parallel only).
	DirtyTiles int

	// DirtyRect bounds the part of the mask that may be non-zero, in the
	// reference image's coordinates. Empty when nothing was selected.
	DirtyRect image.Rectangle

	// Processing and Merging split a parallel fill's time between running
	// tile tasks and building the next round's queue.
	Processing time.Duration
	Merging    time.Duration

	// Elapsed is the wall time of the whole fill.
	Elapsed time.Duration
}

// Selector runs fills with a fixed configuration.
//
// The worker pool used by the parallel algorithms is started on first use
// and released by Close.
//
// Thread safety: Select may be called concurrently.
type Selector struct {
	algorithm Algorithm
	tileSize  parallel.Size
	workers   int
	logger    *slog.Logger

	poolOnce sync.Once
	pool     *parallel.WorkerPool
	ownsPool bool
}

// NewSelector creates a Selector. Without options it runs ScanlineParallel
// on 64x64 tiles with GOMAXPROCS workers.
func NewSelector(opts ...Option) *Selector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.algorithm > ScanlineParallel {
		o.algorithm = ScanlineParallel
	}

	return &Selector{
		algorithm: o.algorithm,
		tileSize:  o.tileSize,
		workers:   o.workers,
		logger:    o.logger,
	}
}

// Algorithm returns the configured algorithm.
func (s *Selector) Algorithm() Algorithm { return s.algorithm }

// TileSize returns the configured tile size.
func (s *Selector) TileSize() (width, height int) { return s.tileSize.W, s.tileSize.H }

// Close stops the worker pool if one was started. The Selector must not be
// used afterwards.
func (s *Selector) Close() {
	s.poolOnce.Do(func() {})
	if s.ownsPool {
		s.pool.Close()
	}
}

func (s *Selector) workerPool() *parallel.WorkerPool {
	s.poolOnce.Do(func() {
		if s.pool == nil {
			s.pool = parallel.NewWorkerPool(s.workers)
			s.ownsPool = true
		}
	})
	return s.pool
}

func (s *Selector) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// Select grows a selection from seed over ref and returns the mask with
// diagnostics. A seed outside ref or a zero threshold gives an all-zero
// mask.
//
// ref must be a well-formed *image.Gray; a Pix slice too short for its
// Rect and Stride is a caller defect and panics.
func (s *Selector) Select(ref *image.Gray, seed image.Point, threshold uint8) (*Mask, Stats) {
	start := time.Now()
	stats := Stats{Algorithm: s.algorithm}
	mask := newMask(ref.Rect)

	if !seed.In(ref.Rect) {
		stats.Elapsed = time.Since(start)
		s.logFill(seed, threshold, stats)
		return mask, stats
	}

	refBuf, err := intImage.FromGray(ref)
	if err != nil {
		panic(err)
	}
	local := seed.Sub(ref.Rect.Min)

	switch s.algorithm {
	case Naive:
		stats.Selected = fill.Naive(refBuf, mask.buf, local, threshold)
	case Scanline:
		stats.Selected = fill.Scanline(refBuf, mask.buf, local, threshold)
	default:
		s.selectParallel(refBuf, mask.buf, local, threshold, &stats)
	}

	switch {
	case stats.Selected == 0:
		stats.DirtyRect = image.Rectangle{}
	case s.algorithm.Parallel():
		stats.DirtyRect = stats.DirtyRect.Add(ref.Rect.Min)
	default:
		stats.DirtyRect = ref.Rect
	}

	stats.Elapsed = time.Since(start)
	s.logFill(seed, threshold, stats)
	return mask, stats
}

func (s *Selector) selectParallel(ref, mask *intImage.Buf, seed image.Point, threshold uint8, stats *Stats) {
	c, _ := fill.CriteriaAt(ref, seed, threshold)
	cfg := parallel.Config{
		TileSize: s.tileSize,
		Pool:     s.workerPool(),
		Logger:   s.log(),
	}

	var ps parallel.Stats
	if s.algorithm == NaiveParallel {
		ps = parallel.Run(cfg, ref, mask, c, seed, seed, fill.Points)
	} else {
		ps = parallel.Run(cfg, ref, mask, c, seed, fill.SeedSpan(seed), fill.Spans)
	}

	stats.Selected = ps.Selected
	stats.Workers = ps.Workers
	stats.Rounds = ps.Rounds
	stats.Tasks = ps.Tasks
	stats.Propagations = ps.Propagations
	stats.DirtyTiles = ps.DirtyTiles
	stats.DirtyRect = ps.DirtyRect
	stats.Processing = ps.Processing
	stats.Merging = ps.Merging
}

func (s *Selector) logFill(seed image.Point, threshold uint8, stats Stats) {
	l := s.log()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{
		slog.String("algorithm", stats.Algorithm.String()),
		slog.Any("seed", seed),
		slog.Int("threshold", int(threshold)),
		slog.Int("selected", stats.Selected),
		slog.Duration("elapsed", stats.Elapsed),
	}
	if stats.Algorithm.Parallel() {
		attrs = append(attrs,
			slog.Int("workers", stats.Workers),
			slog.Int("rounds", stats.Rounds),
			slog.Int("tasks", stats.Tasks),
			slog.Duration("processing", stats.Processing),
			slog.Duration("merging", stats.Merging))
	}
	l.Debug("wand: fill", attrs...)
}

var (
	sharedPoolOnce sync.Once
	sharedPool     *parallel.WorkerPool
)

// defaultSelector returns a Selector with default settings whose parallel
// algorithms share one package-level worker pool.
func defaultSelector(a Algorithm) *Selector {
	sharedPoolOnce.Do(func() {
		sharedPool = parallel.NewWorkerPool(0)
	})
	s := NewSelector(WithAlgorithm(a))
	s.pool = sharedPool
	return s
}

// Fill selects from seed with the per-pixel serial algorithm.
func Fill(ref *image.Gray, seed image.Point, threshold uint8) *Mask {
	m, _ := defaultSelector(Naive).Select(ref, seed, threshold)
	return m
}

// FillScanline selects from seed with the scanline serial algorithm.
func FillScanline(ref *image.Gray, seed image.Point, threshold uint8) *Mask {
	m, _ := defaultSelector(Scanline).Select(ref, seed, threshold)
	return m
}

// FillParallel selects from seed with the per-pixel tile-parallel
// algorithm on 64x64 tiles.
func FillParallel(ref *image.Gray, seed image.Point, threshold uint8) *Mask {
	m, _ := defaultSelector(NaiveParallel).Select(ref, seed, threshold)
	return m
}

// FillScanlineParallel selects from seed with the scanline tile-parallel
// algorithm on 64x64 tiles.
func FillScanlineParallel(ref *image.Gray, seed image.Point, threshold uint8) *Mask {
	m, _ := defaultSelector(ScanlineParallel).Select(ref, seed, threshold)
	return m
}
