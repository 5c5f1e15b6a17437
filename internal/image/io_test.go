package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testGray(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			g.SetGray(x, y, color.Gray{Y: uint8((x*31 + y*17) % 256)}) //nolint:gosec // mod 256
		}
	}
	return g
}

func sameGray(t *testing.T, got image.Image, want *image.Gray) {
	t.Helper()
	g := ToGray(got, GrayLuma)
	if g.Bounds().Size() != want.Bounds().Size() {
		t.Fatalf("size = %v, want %v", g.Bounds().Size(), want.Bounds().Size())
	}
	gb, wb := g.Bounds(), want.Bounds()
	for y := range wb.Dy() {
		for x := range wb.Dx() {
			a := g.GrayAt(gb.Min.X+x, gb.Min.Y+y).Y
			b := want.GrayAt(wb.Min.X+x, wb.Min.Y+y).Y
			if a != b {
				t.Fatalf("pixel (%d, %d) = %d, want %d", x, y, a, b)
			}
		}
	}
}

// =============================================================================
// Save / Load Tests
// =============================================================================

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testGray(23, 11)

	for _, name := range []string{"mask.png", "mask.bmp", "mask.tif", "mask.TIFF", "mask.qoi", "mask" + RawExt} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			sameGray(t, got, src)
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.xyz")
	err := Save(path, testGray(2, 2))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Save created a file for an unsupported format")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoadFromBytes(t *testing.T) {
	if _, err := LoadFromBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadFromBytes(nil) = %v, want ErrEmptyData", err)
	}
	if _, err := LoadFromBytes([]byte("not an image")); err == nil {
		t.Error("LoadFromBytes(garbage) should fail")
	}

	// Raw containers are recognized by the zstd frame magic.
	src := testGray(5, 4)
	var buf bytes.Buffer
	if err := EncodeRaw(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadFromBytes(raw): %v", err)
	}
	sameGray(t, got, src)
}

// =============================================================================
// Raw Container Tests
// =============================================================================

func TestRaw_SubImage(t *testing.T) {
	full := testGray(16, 16)
	sub := full.SubImage(image.Rect(3, 5, 12, 9)).(*image.Gray)

	var buf bytes.Buffer
	if err := EncodeRaw(&buf, sub); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeRaw(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rect != image.Rect(0, 0, 9, 4) {
		t.Errorf("decoded rect = %v, want origin-anchored 9x4", got.Rect)
	}
	sameGray(t, got, sub)
}

func TestRaw_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload func() []byte
	}{
		{"not zstd", func() []byte { return []byte("WGRY....") }},
		{"truncated header", func() []byte { return compress(t, []byte("WGR")) }},
		{"bad magic", func() []byte { return compress(t, []byte("NOPE\x00\x00\x00\x01\x00\x00\x00\x01x")) }},
		{"zero width", func() []byte { return compress(t, []byte("WGRY\x00\x00\x00\x00\x00\x00\x00\x01")) }},
		{"huge", func() []byte { return compress(t, []byte("WGRY\x7f\xff\xff\xff\x7f\xff\xff\xff")) }},
		{"short pixels", func() []byte { return compress(t, []byte("WGRY\x00\x00\x00\x02\x00\x00\x00\x02abc")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRaw(bytes.NewReader(tt.payload())); err == nil {
				t.Error("DecodeRaw should fail")
			}
		})
	}
}

func TestRaw_MalformedIsErrBadRaw(t *testing.T) {
	_, err := DecodeRaw(bytes.NewReader(compress(t, []byte("NOPE\x00\x00\x00\x01\x00\x00\x00\x01x"))))
	if !errors.Is(err, ErrBadRaw) {
		t.Errorf("DecodeRaw(bad magic) = %v, want ErrBadRaw", err)
	}
}
