// Package wand provides fuzzy region selection ("magic wand") over 8-bit
// grayscale images.
//
// # Overview
//
// Starting from a seed pixel, wand grows a 4-connected region of pixels
// whose intensity differs from the seed's by less than a threshold. The
// result is a graded mask rather than a binary one: a pixel at difference d
// gets 255 - d*255/threshold, so the seed is always 255 and values fade
// towards the threshold boundary.
//
// # Quick Start
//
//	import "github.com/gogpu/wand"
//
//	ref := wand.ToGray(img, wand.Luma)
//	mask := wand.FillScanlineParallel(ref, image.Pt(120, 80), 128)
//
//	// Composite the selection, e.g. as an alpha channel
//	alpha := mask.Alpha()
//
// # Algorithms
//
// Four entry points produce byte-identical masks and differ only in how
// they traverse the image:
//
//   - [Fill]: per-pixel fill with an explicit stack
//   - [FillScanline]: span-based fill that works on horizontal runs
//   - [FillParallel]: per-pixel fill, tile parallel
//   - [FillScanlineParallel]: span-based fill, tile parallel
//
// The parallel variants divide the image into tiles (64x64 by default),
// fill each tile independently in synchronous rounds, and hand growth that
// crosses a tile edge to the neighbouring tile for the next round. Tile size
// and worker count are tuning knobs only; see [Selector].
//
// # Degenerate input
//
// A seed outside the image, or a threshold of zero, yields an all-zero mask.
// Neither is an error.
//
// # Coordinate System
//
// Seeds and masks use the reference image's coordinate space, including a
// non-zero Rect.Min. The returned mask has the reference's bounds.
package wand

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
