// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation. Defaults mirror the stock
// picshrink config file so a bare run behaves like a configured one.
package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for one batch run. It is populated by
// [DefaultConfig], optionally merged with a config file, and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
// After parsing it is treated as immutable; nothing in the pipeline writes to
// it.
type Config struct {
	// Paths.
	InputDir  string
	OutputDir string

	// Size budget. Every file whose on-disk size exceeds
	// MaxFileSizeMB * 1024 * 1024 bytes is compressed; smaller files are
	// copied through untouched.
	MaxFileSizeMB float64

	// Encoding quality (0-100). QualityPNG is the JPEG quality used when a
	// PNG over budget is substituted with a lossy re-encode.
	QualityJPEG int
	QualityPNG  int

	// Downscaling. When ResizeEnabled, images larger than MaxWidth x
	// MaxHeight are scaled down to fit before compression.
	ResizeEnabled bool
	MaxWidth      int
	MaxHeight     int

	// PreserveMetadata is declared for config-file compatibility. Only the
	// under-budget copy path keeps metadata (implicitly, by copying the
	// whole file); re-encoded outputs do not carry EXIF over.
	PreserveMetadata bool

	// SupportedFormats lists the file extensions picked up during
	// discovery (leading dot, matched case-insensitively).
	SupportedFormats []string

	// Behavior.
	Workers      int // Default: 1 (sequential). Files are independent, so >1 is safe.
	DryRun       bool
	SkipExisting bool // Default: true. Cleared by --force.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the stock defaults. Used as the base
// before the config file and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		InputDir:         "input",
		OutputDir:        "output",
		MaxFileSizeMB:    1,
		QualityJPEG:      85,
		QualityPNG:       85,
		ResizeEnabled:    false,
		MaxWidth:         1920,
		MaxHeight:        1080,
		PreserveMetadata: true,
		SupportedFormats: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
		Workers:          1,
		DryRun:           false,
		SkipExisting:     true,
		Verbose:          false,
		ColorMode:        ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtension lowercases an extension and ensures a leading dot, so
// config files may list either "jpg" or ".jpg".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Validate checks value ranges and required fields, and canonicalizes the
// extension list. Quality values outside 0-100 are rejected here; the quality
// search additionally never descends below its own floor of 10 at runtime.
func (c *Config) Validate() error {
	if c.MaxFileSizeMB <= 0 {
		return errors.New("max file size must be positive (MB)")
	}
	if c.QualityJPEG < 0 || c.QualityJPEG > 100 {
		return errors.New("jpeg quality must be between 0 and 100")
	}
	if c.QualityPNG < 0 || c.QualityPNG > 100 {
		return errors.New("png quality must be between 0 and 100")
	}
	if c.ResizeEnabled && (c.MaxWidth <= 0 || c.MaxHeight <= 0) {
		return errors.New("resize bounds must be positive pixels")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if len(c.SupportedFormats) == 0 {
		return errors.New("supported formats must not be empty")
	}
	for i, ext := range c.SupportedFormats {
		norm := NormalizeExtension(ext)
		if norm == "" || norm == "." {
			return errors.New("supported formats contain an empty extension")
		}
		c.SupportedFormats[i] = norm
	}

	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("input and output folders must be set")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents the batch from discovering
// its own output files. Both arguments must be absolute, symlink-resolved
// paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
