// Package report formats conversion results for terminal output. It only
// reads the results it is given.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

const divider = "======================================================================"

// PrintResult writes a human-readable account of a single conversion.
func PrintResult(w io.Writer, r types.Result) {
	if !r.Success {
		fmt.Fprintf(w, "\nConversion failed: %s\n", r.ErrorMessage())
		return
	}

	if r.IsSample {
		fmt.Fprintf(w, "\nSample conversion successful\n")
		fmt.Fprintf(w, "  Input:  %s\n", r.InputPath)
		fmt.Fprintf(w, "  Sample: %s\n", r.OutputPath)
		fmt.Fprintf(w, "  Page:   %d of %d\n", r.SamplePage, r.PageCount)
		fmt.Fprintf(w, "  Size:   %.2f MB\n", r.OutputSizeMB)
		fmt.Fprintf(w, "  Time:   %.2f seconds\n", r.Duration.Seconds())
		fmt.Fprintf(w, "\nReview the sample in %s before running the full conversion.\n",
			filepath.Dir(r.OutputPath))
		return
	}

	fmt.Fprintf(w, "\nConversion successful\n")
	fmt.Fprintf(w, "  Input:  %s (%.2f MB)\n", r.InputPath, r.OriginalSizeMB)
	fmt.Fprintf(w, "  Output: %s (%.2f MB)\n", r.OutputPath, r.OutputSizeMB)
	fmt.Fprintf(w, "  Pages:  %d\n", r.PageCount)
	fmt.Fprintf(w, "  Time:   %.2f seconds\n", r.Duration.Seconds())
	if r.OriginalSizeMB > 0 {
		fmt.Fprintf(w, "  Size change: %+.1f%%\n", r.SizeChangePercent())
	}
}

// PrintBatchSummary writes the aggregate outcome of a batch run. Sums cover
// successful conversions only. For sample batches the full-run duration is
// extrapolated from the sample durations and the average page count of the
// sampled files.
func PrintBatchSummary(w io.Writer, results []types.Result, sampleMode bool) {
	title := "BATCH CONVERSION SUMMARY"
	if sampleMode {
		title = "SAMPLE BATCH SUMMARY"
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", divider, title, divider)

	var succeeded, failed []types.Result
	for _, r := range results {
		if r.Success {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}

	fmt.Fprintf(w, "Total files processed: %d\n", len(results))
	fmt.Fprintf(w, "  Successful: %d\n", len(succeeded))
	fmt.Fprintf(w, "  Failed:     %d\n", len(failed))

	if len(succeeded) > 0 {
		var total time.Duration
		for _, r := range succeeded {
			total += r.Duration
		}
		fmt.Fprintf(w, "\nTotal time:            %.2f seconds\n", total.Seconds())
		fmt.Fprintf(w, "Average time per file: %.2f seconds\n",
			total.Seconds()/float64(len(succeeded)))

		if sampleMode {
			var size float64
			var pages int
			for _, r := range succeeded {
				size += r.OutputSizeMB
				pages += r.PageCount
			}
			avgPages := float64(pages) / float64(len(succeeded))
			fmt.Fprintf(w, "Total sample size:     %.2f MB\n", size)
			fmt.Fprintf(w, "Estimated full run:    %.2f seconds (avg %.1f pages/file)\n",
				total.Seconds()*avgPages, avgPages)
		} else {
			var original, output float64
			for _, r := range succeeded {
				original += r.OriginalSizeMB
				output += r.OutputSizeMB
			}
			fmt.Fprintf(w, "Total original size:   %.2f MB\n", original)
			fmt.Fprintf(w, "Total output size:     %.2f MB\n", output)
			if original > 0 {
				fmt.Fprintf(w, "Total size reduction:  %+.1f%%\n",
					(original-output)/original*100)
			}
		}
	}

	if len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed files:\n")
		for _, r := range failed {
			fmt.Fprintf(w, "  %s: %s\n", filepath.Base(r.InputPath), r.ErrorMessage())
		}
	}

	if sampleMode && len(succeeded) > 0 {
		fmt.Fprintf(w, "\nSample files saved to %s. Review them before the full conversion.\n",
			filepath.Dir(succeeded[0].OutputPath))
	}
}
