// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a source PDF into an image-only PDF in which every
// page is a single full-page raster of the original. It also implements
// sample mode, which converts exactly one page so settings can be checked
// before a full run.
package convert

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pdf-raster/internal/render"
	"github.com/pdiddy/pdf-raster/pkg/types"
)

const bytesPerMB = 1024 * 1024

// Converter applies the configured rendering settings to individual files.
// Each call opens its own document handles and releases them on every exit
// path; nothing is shared between calls.
type Converter struct {
	cfg    types.Config
	engine render.Engine
	rng    *rand.Rand
	log    io.Writer
}

// New creates a Converter. rng drives random sample-page selection and may
// be seeded for deterministic tests; nil means time-seeded. log receives
// progress output; nil means stdout.
func New(cfg types.Config, engine render.Engine, rng *rand.Rand, log io.Writer) *Converter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = os.Stdout
	}
	return &Converter{cfg: cfg, engine: engine, rng: rng, log: log}
}

// Convert rasterizes every page of inputPath into outputPath. Failures are
// reported through the Result, never panics; a failed save may leave a
// partial output file behind.
func (c *Converter) Convert(inputPath, outputPath string) types.Result {
	start := time.Now()
	res := types.Result{InputPath: inputPath, OutputPath: outputPath}

	if _, err := os.Stat(inputPath); err != nil {
		res.Err = fmt.Errorf("%w: %s", types.ErrNotFound, inputPath)
		return res
	}
	if c.cfg.Internal.CreateOutputDir {
		c.ensureDir(filepath.Dir(outputPath))
	}

	doc, err := c.engine.Open(inputPath)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", types.ErrIO, err)
		return res
	}
	defer doc.Close()

	total := doc.PageCount()
	res.PageCount = total
	fmt.Fprintf(c.log, "Converting %q (%d pages)\n", filepath.Base(inputPath), total)
	fmt.Fprintf(c.log, "Settings: DPI=%d, JPEG quality=%d\n",
		c.cfg.Conversion.DPI, c.cfg.Conversion.JPEGQuality)

	builder := c.engine.NewBuilder()
	for i := 0; i < total; i++ {
		fmt.Fprintf(c.log, "  page %d/%d\n", i+1, total)
		if err := c.renderInto(doc, builder, i); err != nil {
			res.Err = err
			return res
		}
	}

	if err := builder.Save(outputPath); err != nil {
		res.Err = err
		return res
	}

	res.OriginalSizeMB = fileSizeMB(inputPath)
	res.OutputSizeMB = fileSizeMB(outputPath)
	res.Duration = time.Since(start)
	res.Success = true
	return res
}

// SampleConvert converts a single page of inputPath into the sample
// directory. page is 1-based; zero selects a random page, excluding the
// first and last page for documents longer than two pages. The Result
// carries the page that was actually converted.
func (c *Converter) SampleConvert(inputPath string, page int) types.Result {
	start := time.Now()
	res := types.Result{InputPath: inputPath, IsSample: true}

	if _, err := os.Stat(inputPath); err != nil {
		res.Err = fmt.Errorf("%w: %s", types.ErrNotFound, inputPath)
		return res
	}
	c.ensureDir(c.cfg.Sample.OutputDir)

	doc, err := c.engine.Open(inputPath)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", types.ErrIO, err)
		return res
	}
	defer doc.Close()

	total := doc.PageCount()
	res.PageCount = total
	if total == 0 {
		res.Err = fmt.Errorf("%w: document has no pages", types.ErrInvalidPage)
		return res
	}

	index := c.samplePageIndex(total, page)
	if index < 0 || index >= total {
		res.Err = fmt.Errorf("%w: page %d requested, document has %d pages",
			types.ErrInvalidPage, index+1, total)
		return res
	}
	res.SamplePage = index + 1

	outputPath := filepath.Join(c.cfg.Sample.OutputDir, c.sampleName(inputPath, index+1))
	res.OutputPath = outputPath

	fmt.Fprintf(c.log, "Sampling page %d of %d from %q\n", index+1, total, filepath.Base(inputPath))
	fmt.Fprintf(c.log, "Settings: DPI=%d, JPEG quality=%d\n",
		c.cfg.Conversion.DPI, c.cfg.Conversion.JPEGQuality)

	builder := c.engine.NewBuilder()
	if err := c.renderInto(doc, builder, index); err != nil {
		res.Err = err
		return res
	}
	if err := builder.Save(outputPath); err != nil {
		res.Err = err
		return res
	}

	res.OutputSizeMB = fileSizeMB(outputPath)
	res.Duration = time.Since(start)
	res.Success = true
	return res
}

func (c *Converter) renderInto(doc render.Document, b render.Builder, index int) error {
	width, height, err := doc.PageSize(index)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	img, err := doc.RenderPage(index, c.cfg.Conversion.DPI, c.cfg.Conversion.JPEGQuality)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	return b.AppendImagePage(width, height, img)
}

// samplePageIndex returns the 0-based page index to sample. Out-of-range
// requests are returned as-is for the caller to reject with the page count
// in hand.
func (c *Converter) samplePageIndex(total, page int) int {
	if page == 0 {
		if total > 2 {
			return 1 + c.rng.Intn(total-2)
		}
		return 0
	}
	return page - 1
}

// sampleName derives the deterministic sample file name, e.g.
// "report_sample_page3_dpi100_q90.pdf".
func (c *Converter) sampleName(inputPath string, page int) string {
	return fmt.Sprintf("%s_sample_page%d_dpi%d_q%d.pdf",
		stem(inputPath), page, c.cfg.Conversion.DPI, c.cfg.Conversion.JPEGQuality)
}

// ensureDir creates dir if missing. Failure is a warning: the conversion is
// still attempted, and fails on save if the directory truly is unusable.
func (c *Converter) ensureDir(dir string) {
	if dir == "" || dir == "." {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(c.log, "Warning: could not create directory %s: %v\n", dir, err)
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileSizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / bytesPerMB
}
