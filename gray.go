package wand

import (
	"errors"
	"fmt"
	"image"

	intImage "github.com/gogpu/wand/internal/image"
)

// ErrNotGray is returned by AsGray for images that are not single-channel
// 8-bit gray.
var ErrNotGray = errors.New("wand: image is not 8-bit gray")

// GrayMode selects how colour images are reduced to intensity by ToGray.
type GrayMode = intImage.GrayMode

const (
	// Luma uses Rec. 601 luma weights.
	Luma = intImage.GrayLuma

	// Lightness uses perceptual CIE L* lightness.
	Lightness = intImage.GrayLightness
)

// ParseGrayMode parses "luma" or "lightness".
func ParseGrayMode(s string) (GrayMode, error) {
	return intImage.ParseGrayMode(s)
}

// AsGray returns img as an *image.Gray, rejecting any other pixel format.
// Use it where converting would hide a caller mistake; use ToGray to
// convert.
func AsGray(img image.Image) (*image.Gray, error) {
	g, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotGray, img)
	}
	return g, nil
}

// ToGray reduces img to one 8-bit channel. An *image.Gray is returned as-is
// in Luma mode.
func ToGray(img image.Image, mode GrayMode) *image.Gray {
	return intImage.ToGray(img, mode)
}
