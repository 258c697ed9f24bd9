// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch enumerates PDF files in a folder and drives per-file
// conversion, mirroring the input layout under the output root. A failed
// file never stops the rest of the batch.
package batch

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdf-raster/internal/convert"
	"github.com/pdiddy/pdf-raster/pkg/types"
)

// FindFiles returns the files under dir whose base name matches pattern, in
// lexicographic order. With recursive set the whole tree is walked,
// otherwise only the directory itself. Zero matches is an empty slice, not
// an error; a missing directory is an error.
func FindFiles(dir string, recursive bool, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: input folder %s", types.ErrNotFound, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrNotFound, dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return fmt.Errorf("pattern %q: %w", pattern, err)
			}
			if ok {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// OutputPath mirrors file's location relative to inputRoot under outputRoot,
// so inputRoot/a/b.pdf becomes outputRoot/a/b.pdf. A file that turns out not
// to live under inputRoot falls back to its bare name directly under
// outputRoot.
func OutputPath(inputRoot, outputRoot, file string) string {
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Join(outputRoot, filepath.Base(file))
	}
	return filepath.Join(outputRoot, rel)
}

// ConvertFolder converts every matching file under inputDir into the
// mirrored location under outputDir. A missing input folder or an empty
// match set produces an empty result list with a diagnostic on w. Files
// skipped by SkipExisting emit no result at all: they count as neither
// success nor failure.
func ConvertFolder(c *convert.Converter, inputDir, outputDir string, bc types.BatchConfig, w io.Writer) []types.Result {
	files, err := FindFiles(inputDir, bc.Recursive, bc.Pattern)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "Warning: no files matching %q found in %s\n", bc.Pattern, inputDir)
		return nil
	}

	fmt.Fprintf(w, "Found %d file(s) to process in %s\n", len(files), inputDir)

	var results []types.Result
	for i, f := range files {
		fmt.Fprintf(w, "\n[%d/%d] %s\n", i+1, len(files), filepath.Base(f))

		out := OutputPath(inputDir, outputDir, f)
		if bc.SkipExisting {
			if _, err := os.Stat(out); err == nil {
				fmt.Fprintf(w, "  skipped, output already exists: %s\n", out)
				continue
			}
		}
		results = append(results, c.Convert(f, out))
	}
	return results
}

// SampleFolder converts one page from every matching file into the sample
// directory. SkipExisting does not apply here: every matched file yields a
// result.
func SampleFolder(c *convert.Converter, inputDir string, bc types.BatchConfig, page int, w io.Writer) []types.Result {
	files, err := FindFiles(inputDir, bc.Recursive, bc.Pattern)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "Warning: no files matching %q found in %s\n", bc.Pattern, inputDir)
		return nil
	}

	fmt.Fprintf(w, "Found %d file(s) to sample in %s\n", len(files), inputDir)

	results := make([]types.Result, 0, len(files))
	for i, f := range files {
		fmt.Fprintf(w, "\n[%d/%d] %s\n", i+1, len(files), filepath.Base(f))
		results = append(results, c.SampleConvert(f, page))
	}
	return results
}
