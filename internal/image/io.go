package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// RawExt is the extension of the zstd-compressed raw gray container.
const RawExt = ".gray.zst"

// Load reads an image from path. Registered formats are PNG, JPEG, GIF,
// BMP, TIFF, WebP, QOI and the raw gray container.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.HasSuffix(strings.ToLower(path), RawExt) {
		return DecodeRaw(f)
	}
	return Decode(f)
}

// LoadFromBytes decodes an image held in memory.
func LoadFromBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if bytes.HasPrefix(data, []byte(rawMagicZstd)) {
		return DecodeRaw(bytes.NewReader(data))
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// Save writes img to path, picking the encoder from the extension:
// .png, .bmp, .tif/.tiff, .qoi or .gray.zst.
func Save(path string, img image.Image) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := enc(f, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, RawExt) {
		return func(w io.Writer, img image.Image) error {
			return EncodeRaw(w, ToGray(img, GrayLuma))
		}, nil
	}

	switch filepath.Ext(lower) {
	case ".png":
		return wrapEncoder("PNG", png.Encode), nil
	case ".bmp":
		return wrapEncoder("BMP", bmp.Encode), nil
	case ".tif", ".tiff":
		return wrapEncoder("TIFF", func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}), nil
	case ".qoi":
		return wrapEncoder("QOI", qoi.Encode), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func wrapEncoder(name string, enc encodeFunc) encodeFunc {
	return func(w io.Writer, img image.Image) error {
		if err := enc(w, img); err != nil {
			return fmt.Errorf("image: encode %s: %w", name, err)
		}
		return nil
	}
}
