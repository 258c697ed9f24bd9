// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

// pdfBuilder accumulates the output document in memory through pdfcpu's
// image import, one page per call, and writes the finished bytes in Save.
// Pages can differ in size, so each append carries its own dimensions.
type pdfBuilder struct {
	internal types.InternalConfig
	conf     *model.Configuration
	doc      []byte // serialized document so far; nil until the first page
}

func newPDFBuilder(internal types.InternalConfig) *pdfBuilder {
	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = internal.UseDeflate
	conf.WriteXRefStream = internal.UseDeflate
	if internal.GarbageLevel >= 3 {
		conf.OptimizeDuplicateContentStreams = true
	}
	return &pdfBuilder{internal: internal, conf: conf}
}

func (b *pdfBuilder) AppendImagePage(width, height float64, img []byte) error {
	// pos:full stretches the image across the whole page, which has the
	// same aspect ratio because both come from the source page geometry.
	desc := fmt.Sprintf("dim:%.2f %.2f, pos:full", width, height)
	imp, err := api.Import(desc, pdftypes.POINTS)
	if err != nil {
		return fmt.Errorf("page import settings: %w", err)
	}

	var rs io.ReadSeeker
	if b.doc != nil {
		rs = bytes.NewReader(b.doc)
	}
	var out bytes.Buffer
	if err := api.ImportImages(rs, &out, []io.Reader{bytes.NewReader(img)}, imp, b.conf); err != nil {
		return fmt.Errorf("appending image page: %w", err)
	}
	b.doc = out.Bytes()
	return nil
}

func (b *pdfBuilder) Save(path string) error {
	if b.doc == nil {
		return fmt.Errorf("%w: document has no pages", types.ErrIO)
	}
	if err := os.WriteFile(path, b.doc, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrIO, path, err)
	}
	if b.internal.GarbageLevel > 0 {
		// Compaction pass over the saved file; empty outFile means in place.
		if err := api.OptimizeFile(path, "", b.conf); err != nil {
			return fmt.Errorf("%w: optimizing %s: %v", types.ErrIO, path, err)
		}
	}
	return nil
}
