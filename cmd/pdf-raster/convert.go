package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-raster/internal/config"
	"github.com/pdiddy/pdf-raster/internal/convert"
	"github.com/pdiddy/pdf-raster/internal/render"
	"github.com/pdiddy/pdf-raster/internal/report"
	"github.com/pdiddy/pdf-raster/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf> [output.pdf]",
	Short: "Convert one PDF into an image-only PDF",
	Long: `Convert rasterizes every page of a single PDF and writes an image-only
copy. With --sample only one page is converted into the sample directory:
a random interior page unless --sample-page picks one.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	addConversionFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addConversionFlags registers the flags shared by convert, batch, and
// config. The defaults shown in help are only a fallback; flags the user
// leaves untouched never override config-file values.
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("dpi", config.DefaultDPI, "rendering resolution (50-600)")
	cmd.Flags().Int("quality", config.DefaultJPEGQuality, "JPEG quality for page images (1-100)")
	cmd.Flags().Bool("sample", false, "convert a single page only, to preview the settings")
	cmd.Flags().Int("sample-page", 0, "1-based page to sample (0 picks a random page)")
	cmd.Flags().String("sample-dir", config.DefaultSampleDir, "directory for sample output files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetBool("sample")
	if !sample && len(args) < 2 {
		return fmt.Errorf("an output path is required unless --sample is set")
	}

	conv := convert.New(cfg, render.NewFitzEngine(cfg.Internal, os.Stderr), nil, os.Stdout)

	var result types.Result
	if sample {
		result = conv.SampleConvert(args[0], cfg.Sample.Page)
	} else {
		result = conv.Convert(args[0], args[1])
	}

	report.PrintResult(os.Stdout, result)
	if !result.Success {
		return fmt.Errorf("conversion failed")
	}
	return nil
}
