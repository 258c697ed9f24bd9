package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-raster/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved effective configuration",
	Long: `Config resolves settings exactly the way convert and batch do: built-in
defaults, then the YAML config file, then CLI flags. It prints the
effective configuration as YAML, which makes it easy to check a config
file or a flag combination without converting anything.`,
	RunE: runConfig,
}

func init() {
	addConversionFlags(configCmd)
	addBatchFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprint(os.Stdout, string(out))
	return nil
}
