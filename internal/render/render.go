// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render is the boundary to the external PDF libraries. go-fitz
// (MuPDF) renders source pages to bitmaps; pdfcpu assembles and compacts
// the image-only output document. Nothing outside this package touches
// either library.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

// Document is an open source PDF.
type Document interface {
	PageCount() int

	// PageSize returns the page dimensions in PDF points (1/72 inch).
	PageSize(index int) (width, height float64, err error)

	// RenderPage rasterizes the page at the given DPI and returns encoded
	// image bytes: JPEG at the given quality, or PNG when the JPEG encoder
	// fails for that page. The PNG fallback is logged, not surfaced.
	RenderPage(index, dpi, quality int) ([]byte, error)

	Close() error
}

// Builder assembles an image-only output document page by page.
type Builder interface {
	// AppendImagePage adds a page of the given size in points whose sole
	// content is the encoded image, stretched to fill the page.
	AppendImagePage(width, height float64, img []byte) error

	// Save writes the document to path, applying the configured
	// compaction settings.
	Save(path string) error
}

// Engine opens source documents and creates output builders. The converter
// depends on this interface so tests can substitute fakes.
type Engine interface {
	Open(path string) (Document, error)
	NewBuilder() Builder
}

// FitzEngine implements Engine with go-fitz rendering and pdfcpu assembly.
type FitzEngine struct {
	internal types.InternalConfig
	warn     io.Writer
}

// NewFitzEngine creates the production engine. warn receives per-page
// encoder-fallback notices; nil means stderr.
func NewFitzEngine(internal types.InternalConfig, warn io.Writer) *FitzEngine {
	if warn == nil {
		warn = os.Stderr
	}
	return &FitzEngine{internal: internal, warn: warn}
}

func (e *FitzEngine) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &fitzDocument{doc: doc, warn: e.warn}, nil
}

func (e *FitzEngine) NewBuilder() Builder {
	return newPDFBuilder(e.internal)
}

type fitzDocument struct {
	doc  *fitz.Document
	warn io.Writer
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) PageSize(index int) (float64, float64, error) {
	// Bound reports the page box at 72 DPI, which is points.
	bound, err := d.doc.Bound(index)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d bounds: %w", index+1, err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

func (d *fitzDocument) RenderPage(index, dpi, quality int) ([]byte, error) {
	img, err := d.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	return encodePage(img, index+1, quality, d.warn, EncodeJPEG, EncodePNG)
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
