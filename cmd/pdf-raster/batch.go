package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-raster/internal/batch"
	"github.com/pdiddy/pdf-raster/internal/config"
	"github.com/pdiddy/pdf-raster/internal/convert"
	"github.com/pdiddy/pdf-raster/internal/render"
	"github.com/pdiddy/pdf-raster/internal/report"
	"github.com/pdiddy/pdf-raster/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir> [output_dir]",
	Short: "Convert every matching PDF in a folder",
	Long: `Batch converts all PDFs in a folder that match the file pattern,
mirroring the folder layout under the output directory. A file that fails
does not stop the rest of the batch. With --sample one page per file is
converted into the sample directory instead, and the summary estimates how
long the full run would take.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBatch,
}

func init() {
	addConversionFlags(batchCmd)
	addBatchFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("recursive", "r", false, "process subfolders recursively")
	cmd.Flags().String("pattern", config.DefaultPattern, "file pattern to match")
	cmd.Flags().Bool("skip-existing", false, "skip files whose output already exists")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetBool("sample")
	if !sample && len(args) < 2 {
		return fmt.Errorf("an output folder is required unless --sample is set")
	}

	conv := convert.New(cfg, render.NewFitzEngine(cfg.Internal, os.Stderr), nil, os.Stdout)

	var results []types.Result
	if sample {
		results = batch.SampleFolder(conv, args[0], cfg.Batch, cfg.Sample.Page, os.Stdout)
	} else {
		results = batch.ConvertFolder(conv, args[0], args[1], cfg.Batch, os.Stdout)
	}
	if len(results) == 0 {
		// Nothing to convert is not a failure.
		return nil
	}

	report.PrintBatchSummary(os.Stdout, results, sample)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed conversion", failed)
	}
	return nil
}
