package wand

import (
	"log/slog"

	"github.com/gogpu/wand/internal/parallel"
)

// Option configures a Selector during creation.
//
// Example:
//
//	// Default: scanline, tile parallel, 64x64 tiles, GOMAXPROCS workers
//	s := wand.NewSelector()
//
//	// Naive serial fill
//	s := wand.NewSelector(wand.WithAlgorithm(wand.Naive))
type Option func(*selectorOptions)

// selectorOptions holds optional configuration for Selector creation.
type selectorOptions struct {
	algorithm Algorithm
	tileSize  parallel.Size
	workers   int
	logger    *slog.Logger
}

// defaultOptions returns the default selector options.
func defaultOptions() selectorOptions {
	return selectorOptions{
		algorithm: ScanlineParallel,
		tileSize:  parallel.DefaultTileSize,
		workers:   0, // GOMAXPROCS
		logger:    nil, // package logger at call time
	}
}

// WithAlgorithm sets the traversal strategy.
func WithAlgorithm(a Algorithm) Option {
	return func(o *selectorOptions) {
		o.algorithm = a
	}
}

// WithTileSize sets the tile size used by the parallel algorithms.
// Non-positive dimensions keep the 64x64 default. The tile size never
// changes the resulting mask, only the granularity of parallel work.
func WithTileSize(width, height int) Option {
	return func(o *selectorOptions) {
		if s := (parallel.Size{W: width, H: height}); s.Valid() {
			o.tileSize = s
		}
	}
}

// WithWorkers sets the number of worker goroutines used by the parallel
// algorithms. Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *selectorOptions) {
		o.workers = n
	}
}

// WithLogger sets a logger for this Selector, overriding the package-wide
// logger from [SetLogger].
func WithLogger(l *slog.Logger) Option {
	return func(o *selectorOptions) {
		o.logger = l
	}
}
