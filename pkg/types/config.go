package types

// ConversionConfig holds the rendering settings shared by all modes.
type ConversionConfig struct {
	// DPI is the rendering resolution in dots per inch. PDF pages are laid
	// out in points (72 per inch), so the render scale is DPI/72.
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// JPEGQuality is the JPEG compression quality (1-100) for page images.
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" mapstructure:"jpeg_quality"`
}

// SampleConfig holds settings for sample (single-page preview) mode.
type SampleConfig struct {
	// OutputDir is the directory sample PDFs are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Page is the 1-based page number to sample. Zero selects a random page.
	Page int `json:"page" yaml:"page" mapstructure:"page"`
}

// BatchConfig holds settings for folder conversion.
type BatchConfig struct {
	// Recursive walks subfolders of the input directory.
	Recursive bool `json:"recursive" yaml:"recursive" mapstructure:"recursive"`

	// Pattern matches input file names, e.g. "*.pdf".
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// SkipExisting skips files whose output already exists.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing" mapstructure:"skip_existing"`
}

// InternalConfig holds the PDF-save knobs passed through to the PDF library.
type InternalConfig struct {
	// GarbageLevel controls how aggressively the saved document is
	// compacted. Zero disables the post-save optimization pass.
	GarbageLevel int `json:"garbage_level" yaml:"garbage_level" mapstructure:"garbage_level"`

	// UseDeflate enables stream compression in the saved document.
	UseDeflate bool `json:"use_deflate" yaml:"use_deflate" mapstructure:"use_deflate"`

	// CreateOutputDir creates missing output directories before conversion.
	CreateOutputDir bool `json:"create_output_dir" yaml:"create_output_dir" mapstructure:"create_output_dir"`
}

// Config groups all settings for one invocation. It is built once by the
// configuration resolver and treated as immutable afterwards.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Sample     SampleConfig     `json:"sample" yaml:"sample" mapstructure:"sample"`
	Batch      BatchConfig      `json:"batch" yaml:"batch" mapstructure:"batch"`
	Internal   InternalConfig   `json:"internal" yaml:"internal" mapstructure:"internal"`
}
