package image

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ErrBadRaw is returned when a raw gray container is malformed.
var ErrBadRaw = errors.New("image: malformed raw gray data")

// The raw container is a zstd stream holding a 12-byte header (magic,
// big-endian uint32 width and height) followed by packed rows.
const (
	rawMagic     = "WGRY"
	rawMagicZstd = "\x28\xb5\x2f\xfd"
	rawHeaderLen = 12

	// maxRawPixels bounds allocations driven by an untrusted header.
	maxRawPixels = 1 << 30
)

// EncodeRaw writes g to w as a zstd-compressed raw gray container.
func EncodeRaw(w io.Writer, g *image.Gray) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("image: zstd writer: %w", err)
	}

	b := g.Bounds()
	var hdr [rawHeaderLen]byte
	copy(hdr[:4], rawMagic)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(b.Dx())) //nolint:gosec // image sizes are non-negative
	binary.BigEndian.PutUint32(hdr[8:], uint32(b.Dy()))  //nolint:gosec // image sizes are non-negative

	if _, err := enc.Write(hdr[:]); err != nil {
		_ = enc.Close()
		return fmt.Errorf("image: encode raw: %w", err)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := g.PixOffset(b.Min.X, y)
		if _, err := enc.Write(g.Pix[off : off+b.Dx()]); err != nil {
			_ = enc.Close()
			return fmt.Errorf("image: encode raw: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("image: encode raw: %w", err)
	}
	return nil
}

// DecodeRaw reads a raw gray container written by EncodeRaw.
func DecodeRaw(r io.Reader) (*image.Gray, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("image: zstd reader: %w", err)
	}
	defer dec.Close()

	var hdr [rawHeaderLen]byte
	if _, err := io.ReadFull(dec, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrBadRaw, err)
	}
	if string(hdr[:4]) != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadRaw, hdr[:4])
	}
	w := int(binary.BigEndian.Uint32(hdr[4:8]))
	h := int(binary.BigEndian.Uint32(hdr[8:]))
	if w <= 0 || h <= 0 || w > maxRawPixels/h {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadRaw, w, h)
	}

	g := image.NewGray(image.Rect(0, 0, w, h))
	if _, err := io.ReadFull(dec, g.Pix); err != nil {
		return nil, fmt.Errorf("%w: pixels: %w", ErrBadRaw, err)
	}
	return g, nil
}
