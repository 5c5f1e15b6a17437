package wand

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognized names.
var ErrUnknownAlgorithm = errors.New("wand: unknown algorithm")

// Algorithm is a flood fill traversal strategy. All algorithms produce the
// same mask.
type Algorithm uint8

const (
	// Naive visits pixels one at a time from an explicit stack.
	Naive Algorithm = iota

	// Scanline fills horizontal runs and seeds the rows above and below.
	Scanline

	// NaiveParallel runs Naive per tile in parallel rounds.
	NaiveParallel

	// ScanlineParallel runs Scanline per tile in parallel rounds.
	ScanlineParallel
)

// String returns the name accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	switch a {
	case Naive:
		return "naive"
	case Scanline:
		return "scanline"
	case NaiveParallel:
		return "naive-parallel"
	case ScanlineParallel:
		return "scanline-parallel"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// Parallel reports whether the algorithm runs tile parallel.
func (a Algorithm) Parallel() bool {
	return a == NaiveParallel || a == ScanlineParallel
}

// ParseAlgorithm parses an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range []Algorithm{Naive, Scanline, NaiveParallel, ScanlineParallel} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}
