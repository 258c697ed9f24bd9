// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Result records the outcome of one file-conversion attempt. It is created
// by the converter and consumed by the reporter; nothing mutates it after
// creation.
type Result struct {
	Success    bool
	InputPath  string
	OutputPath string

	// OriginalSizeMB and OutputSizeMB are file sizes in megabytes. Zero
	// when the conversion failed before the corresponding file existed.
	OriginalSizeMB float64
	OutputSizeMB   float64

	// Duration is the wall-clock time of the conversion.
	Duration time.Duration

	// PageCount is the page count of the source document, when known.
	PageCount int

	// Err is set when Success is false.
	Err error

	// IsSample marks single-page preview conversions. SamplePage is the
	// 1-based page that was converted, which matters when the page was
	// chosen at random.
	IsSample   bool
	SamplePage int
}

// SizeChangePercent returns the size reduction relative to the original
// file, as a percentage. Positive means the output is smaller.
func (r Result) SizeChangePercent() float64 {
	if r.OriginalSizeMB <= 0 {
		return 0
	}
	return (r.OriginalSizeMB - r.OutputSizeMB) / r.OriginalSizeMB * 100
}

// ErrorMessage returns the failure message, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
