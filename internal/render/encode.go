package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

// EncodeJPEG encodes img as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: jpeg: %v", types.ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// encodePage encodes a rendered page with jpegEnc, falling back to pngEnc
// when it fails. page is 1-based and only used in the notice written to warn.
func encodePage(img image.Image, page, quality int, warn io.Writer,
	jpegEnc func(image.Image, int) ([]byte, error),
	pngEnc func(image.Image) ([]byte, error)) ([]byte, error) {

	data, err := jpegEnc(img, quality)
	if err != nil {
		fmt.Fprintf(warn, "Warning: page %d JPEG encoding failed (%v), using PNG\n", page, err)
		return pngEnc(img)
	}
	return data, nil
}

// EncodePNG encodes img as PNG. Used as the lossless fallback when JPEG
// encoding fails for a page.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: png: %v", types.ErrEncode, err)
	}
	return buf.Bytes(), nil
}
