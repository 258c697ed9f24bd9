// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdf-raster/internal/config"
	"github.com/pdiddy/pdf-raster/internal/render"
)

// writeFixturePDF writes a minimal valid PDF with the given number of empty
// US-Letter pages and returns its path. Offsets are tracked as the file is
// built so the xref table is exact.
func writeFixturePDF(t *testing.T, pages int) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// Exercises the real go-fitz/pdfcpu pipeline end to end: a three page input
// must produce a valid three page image-only output.
func TestConvert_RealEngine(t *testing.T) {
	input := writeFixturePDF(t, 3)
	cfg := config.Default()
	conv := New(cfg, render.NewFitzEngine(cfg.Internal, io.Discard), nil, io.Discard)

	output := filepath.Join(t.TempDir(), "out.pdf")
	res := conv.Convert(input, output)

	if !res.Success {
		t.Fatalf("Convert failed: %v", res.Err)
	}
	if res.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", res.PageCount)
	}
	if res.OutputSizeMB <= 0 {
		t.Errorf("OutputSizeMB = %v, want > 0", res.OutputSizeMB)
	}
	if res.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", res.Duration)
	}

	got, err := api.PageCountFile(output)
	if err != nil {
		t.Fatalf("output is not a readable PDF: %v", err)
	}
	if got != 3 {
		t.Errorf("output page count = %d, want 3", got)
	}
}

// Converting the same input twice with the same settings must yield outputs
// with identical page counts and near-identical sizes.
func TestConvert_RealEngineRepeatable(t *testing.T) {
	input := writeFixturePDF(t, 3)
	cfg := config.Default()
	conv := New(cfg, render.NewFitzEngine(cfg.Internal, io.Discard), nil, io.Discard)

	dir := t.TempDir()
	first := conv.Convert(input, filepath.Join(dir, "first.pdf"))
	second := conv.Convert(input, filepath.Join(dir, "second.pdf"))

	if !first.Success || !second.Success {
		t.Fatalf("conversions failed: %v / %v", first.Err, second.Err)
	}
	if first.PageCount != second.PageCount {
		t.Errorf("page counts differ: %d vs %d", first.PageCount, second.PageCount)
	}
	if diff := math.Abs(first.OutputSizeMB - second.OutputSizeMB); diff > 0.01 {
		t.Errorf("output sizes differ by %.3f MB: %.3f vs %.3f",
			diff, first.OutputSizeMB, second.OutputSizeMB)
	}
}

// Sample mode through the real engine: one page out, named after its source.
func TestSampleConvert_RealEngine(t *testing.T) {
	input := writeFixturePDF(t, 3)
	cfg := config.Default()
	cfg.Sample.OutputDir = filepath.Join(t.TempDir(), "samples")
	conv := New(cfg, render.NewFitzEngine(cfg.Internal, io.Discard), nil, io.Discard)

	res := conv.SampleConvert(input, 2)
	if !res.Success {
		t.Fatalf("SampleConvert failed: %v", res.Err)
	}
	if res.SamplePage != 2 {
		t.Errorf("SamplePage = %d, want 2", res.SamplePage)
	}
	got, err := api.PageCountFile(res.OutputPath)
	if err != nil {
		t.Fatalf("sample output is not a readable PDF: %v", err)
	}
	if got != 1 {
		t.Errorf("sample page count = %d, want 1", got)
	}
}
