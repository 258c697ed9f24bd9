// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the effective settings for one invocation:
// built-in defaults, overlaid by an optional YAML config file, overlaid by
// whatever CLI flags the user actually set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

// Built-in defaults and validation bounds.
const (
	DefaultDPI         = 100
	DefaultJPEGQuality = 90
	DefaultSampleDir   = "samples"
	DefaultPattern     = "*.pdf"
	DefaultGarbage     = 4

	MinDPI     = 50
	MaxDPI     = 600
	MinQuality = 1
	MaxQuality = 100
)

// Default returns the built-in configuration used when neither the config
// file nor the CLI provides a value.
func Default() types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			DPI:         DefaultDPI,
			JPEGQuality: DefaultJPEGQuality,
		},
		Sample: types.SampleConfig{
			OutputDir: DefaultSampleDir,
		},
		Batch: types.BatchConfig{
			Pattern: DefaultPattern,
		},
		Internal: types.InternalConfig{
			GarbageLevel:    DefaultGarbage,
			UseDeflate:      true,
			CreateOutputDir: true,
		},
	}
}

// flagBindings maps config keys to the CLI flags that may override them.
// Binding through viper means a flag only wins when the user set it; an
// untouched flag never clobbers a config-file value.
var flagBindings = map[string]string{
	"conversion.dpi":          "dpi",
	"conversion.jpeg_quality": "quality",
	"sample.output_dir":       "sample-dir",
	"sample.page":             "sample-page",
	"batch.recursive":         "recursive",
	"batch.pattern":           "pattern",
	"batch.skip_existing":     "skip-existing",
}

// Resolve builds the effective configuration. cfgFile is the --config value;
// empty means the default search path (./pdf-raster.yaml, then
// ~/.config/pdf-raster/config.yaml). flags may be nil. A missing config file
// is a warning, not an error; a malformed one is an error. The result is
// validated before return so no conversion starts with out-of-range settings.
func Resolve(cfgFile string, flags *pflag.FlagSet) (types.Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdf-raster")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdf-raster"))
		}
	}

	v.SetEnvPrefix("PDF_RASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: no config file found, using defaults\n")
		} else {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks all closed ranges. It runs before any file I/O.
func Validate(cfg types.Config) error {
	if cfg.Conversion.DPI < MinDPI || cfg.Conversion.DPI > MaxDPI {
		return fmt.Errorf("%w: dpi %d outside [%d, %d]",
			types.ErrValidation, cfg.Conversion.DPI, MinDPI, MaxDPI)
	}
	if cfg.Conversion.JPEGQuality < MinQuality || cfg.Conversion.JPEGQuality > MaxQuality {
		return fmt.Errorf("%w: jpeg quality %d outside [%d, %d]",
			types.ErrValidation, cfg.Conversion.JPEGQuality, MinQuality, MaxQuality)
	}
	if cfg.Sample.Page < 0 {
		return fmt.Errorf("%w: sample page %d must be 1 or greater (0 selects a random page)",
			types.ErrValidation, cfg.Sample.Page)
	}
	if cfg.Batch.Pattern == "" {
		return fmt.Errorf("%w: batch pattern must not be empty", types.ErrValidation)
	}
	return nil
}

func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("conversion.dpi", d.Conversion.DPI)
	v.SetDefault("conversion.jpeg_quality", d.Conversion.JPEGQuality)
	v.SetDefault("sample.output_dir", d.Sample.OutputDir)
	v.SetDefault("sample.page", d.Sample.Page)
	v.SetDefault("batch.recursive", d.Batch.Recursive)
	v.SetDefault("batch.pattern", d.Batch.Pattern)
	v.SetDefault("batch.skip_existing", d.Batch.SkipExisting)
	v.SetDefault("internal.garbage_level", d.Internal.GarbageLevel)
	v.SetDefault("internal.use_deflate", d.Internal.UseDeflate)
	v.SetDefault("internal.create_output_dir", d.Internal.CreateOutputDir)
}
