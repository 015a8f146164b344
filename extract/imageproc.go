package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/veldtlabs/multirag/core"
)

const (
	// maxImagePixels is the decompression-bomb guard: images whose decoded
	// pixel count exceeds it are rejected before full decode.
	maxImagePixels = 178956970

	// Normalized page bounds, preserving aspect ratio.
	minImageDim = 256
	maxImageDim = 2048

	jpegQuality = 90
)

// decodeImage decodes raw image bytes, guarding against decompression bombs
// before the full decode runs.
func decodeImage(raw []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: not a decodable image: %v", core.ErrFileNotValid, err)
	}

	if pixels := cfg.Width * cfg.Height; pixels > maxImagePixels {
		return nil, fmt.Errorf("%w: %d pixels exceeds limit of %d",
			core.ErrImageTooLarge, pixels, maxImagePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", core.ErrFileNotValid, err)
	}
	return img, nil
}

// adjustOrientation applies the EXIF orientation tag, if present.
// Only JPEG carries EXIF; everything else passes through unchanged.
func adjustOrientation(img image.Image, raw []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return img
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	switch orientation {
	case 3:
		return imaging.Rotate180(img)
	case 6:
		return imaging.Rotate270(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// adjustShape scales the image into the [minImageDim, maxImageDim] bound
// while preserving aspect ratio: upscale first if too small, then downscale
// if too large.
func adjustShape(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w < minImageDim || h < minImageDim {
		scale := max(float64(minImageDim)/float64(w), float64(minImageDim)/float64(h))
		w, h = int(float64(w)*scale), int(float64(h)*scale)
	}

	if w > maxImageDim || h > maxImageDim {
		scale := min(float64(maxImageDim)/float64(w), float64(maxImageDim)/float64(h))
		w, h = int(float64(w)*scale), int(float64(h)*scale)
	}

	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// processImage normalizes raw image bytes into the canonical chunk payload:
// EXIF-oriented, shape-bounded, JPEG re-encoded, base64.
func processImage(raw []byte) (string, error) {
	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}

	img = adjustOrientation(img, raw)
	img = adjustShape(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("%w: re-encoding image: %v", core.ErrFileNotValid, err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
