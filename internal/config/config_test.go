// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-raster/pkg/types"
)

// newFlags mirrors the flag set the CLI registers on convert and batch.
func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("dpi", DefaultDPI, "")
	fs.Int("quality", DefaultJPEGQuality, "")
	fs.Int("sample-page", 0, "")
	fs.String("sample-dir", DefaultSampleDir, "")
	fs.Bool("recursive", false, "")
	fs.String("pattern", DefaultPattern, "")
	fs.Bool("skip-existing", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// writeConfig writes a YAML config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdf-raster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	// Point at a file that does not exist: warn and fall back to defaults.
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Resolve(missing, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultDPI, cfg.Conversion.DPI)
	assert.Equal(t, DefaultJPEGQuality, cfg.Conversion.JPEGQuality)
	assert.Equal(t, DefaultSampleDir, cfg.Sample.OutputDir)
	assert.Equal(t, DefaultPattern, cfg.Batch.Pattern)
	assert.Equal(t, DefaultGarbage, cfg.Internal.GarbageLevel)
	assert.True(t, cfg.Internal.UseDeflate)
	assert.True(t, cfg.Internal.CreateOutputDir)
}

func TestResolve_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PDF_RASTER_CONVERSION_DPI", "300")
	t.Setenv("PDF_RASTER_BATCH_RECURSIVE", "true")
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Resolve(missing, newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Conversion.DPI)
	assert.True(t, cfg.Batch.Recursive)
}

func TestResolve_ChangedFlagBeatsEnv(t *testing.T) {
	t.Setenv("PDF_RASTER_CONVERSION_DPI", "300")
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Resolve(missing, newFlags(t, "--dpi", "200"))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Conversion.DPI)
}

func TestResolve_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
conversion:
  dpi: 150
  jpeg_quality: 75
sample:
  output_dir: previews
batch:
  recursive: true
  skip_existing: true
internal:
  garbage_level: 2
  use_deflate: false
`)

	cfg, err := Resolve(path, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, 150, cfg.Conversion.DPI)
	assert.Equal(t, 75, cfg.Conversion.JPEGQuality)
	assert.Equal(t, "previews", cfg.Sample.OutputDir)
	assert.True(t, cfg.Batch.Recursive)
	assert.True(t, cfg.Batch.SkipExisting)
	assert.Equal(t, 2, cfg.Internal.GarbageLevel)
	assert.False(t, cfg.Internal.UseDeflate)

	// Sections the file omits keep their defaults.
	assert.Equal(t, DefaultPattern, cfg.Batch.Pattern)
}

func TestResolve_FlagBeatsFile(t *testing.T) {
	path := writeConfig(t, "conversion:\n  dpi: 150\n")

	cfg, err := Resolve(path, newFlags(t, "--dpi", "200"))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Conversion.DPI)
}

func TestResolve_UnsetFlagDoesNotClobberFile(t *testing.T) {
	path := writeConfig(t, "conversion:\n  dpi: 150\n")

	// --quality is set, --dpi is not: dpi must come from the file.
	cfg, err := Resolve(path, newFlags(t, "--quality", "50"))
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Conversion.DPI)
	assert.Equal(t, 50, cfg.Conversion.JPEGQuality)
}

func TestResolve_MalformedFile(t *testing.T) {
	path := writeConfig(t, "conversion: [not a mapping\n")

	_, err := Resolve(path, newFlags(t))
	assert.Error(t, err)
}

func TestResolve_ValidatesBeforeAnyConversion(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Resolve(missing, newFlags(t, "--dpi", "49"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Config)
		wantErr bool
	}{
		{"defaults valid", func(c *types.Config) {}, false},
		{"dpi lower bound", func(c *types.Config) { c.Conversion.DPI = 50 }, false},
		{"dpi upper bound", func(c *types.Config) { c.Conversion.DPI = 600 }, false},
		{"dpi too low", func(c *types.Config) { c.Conversion.DPI = 49 }, true},
		{"dpi too high", func(c *types.Config) { c.Conversion.DPI = 601 }, true},
		{"quality lower bound", func(c *types.Config) { c.Conversion.JPEGQuality = 1 }, false},
		{"quality upper bound", func(c *types.Config) { c.Conversion.JPEGQuality = 100 }, false},
		{"quality too low", func(c *types.Config) { c.Conversion.JPEGQuality = 0 }, true},
		{"quality too high", func(c *types.Config) { c.Conversion.JPEGQuality = 101 }, true},
		{"random sample page", func(c *types.Config) { c.Sample.Page = 0 }, false},
		{"explicit sample page", func(c *types.Config) { c.Sample.Page = 3 }, false},
		{"negative sample page", func(c *types.Config) { c.Sample.Page = -1 }, true},
		{"empty pattern", func(c *types.Config) { c.Batch.Pattern = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
