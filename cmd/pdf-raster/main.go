// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-raster CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-raster CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-raster",
	Short: "Rasterize PDF pages into image-only PDFs",
	Long: `pdf-raster converts PDF documents into image-only PDFs: every page is
rendered to a bitmap at a configurable DPI and re-embedded as the sole
content of a fresh page of the same size.

Use convert for single files and batch for folder trees. Either command
accepts --sample to convert just one page first, so DPI and JPEG quality
can be validated cheaply before committing to a full run. Settings come
from built-in defaults, an optional YAML config file, and CLI flags, in
that order of increasing priority.`,
}

func init() {
	rootCmd.PersistentFlags().String("config", "",
		"config file (default: ./pdf-raster.yaml or ~/.config/pdf-raster/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
