package config

// This file implements the optional YAML config file. The file supplies the
// same settings as the CLI; flags parsed afterwards win. Every field is a
// pointer so an absent key leaves the default (or a previous layer) alone.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path tried when --config is not given.
const DefaultConfigFile = "picshrink.yaml"

// fileConfig mirrors the YAML schema of the config file.
type fileConfig struct {
	InputFolder      *string   `yaml:"input_folder"`
	OutputFolder     *string   `yaml:"output_folder"`
	MaxFileSizeMB    *float64  `yaml:"max_file_size_mb"`
	QualityJPEG      *int      `yaml:"quality_jpeg"`
	QualityPNG       *int      `yaml:"quality_png"`
	ResizeEnabled    *bool     `yaml:"resize_enabled"`
	MaxWidth         *int      `yaml:"max_width"`
	MaxHeight        *int      `yaml:"max_height"`
	PreserveMetadata *bool     `yaml:"preserve_metadata"`
	SupportedFormats *[]string `yaml:"supported_formats"`
	Workers          *int      `yaml:"workers"`
	LogFile          *string   `yaml:"log_file"`
}

// ApplyFile merges settings from the YAML file at path into cfg. A missing
// file is not an error — the caller decides whether that deserves a warning —
// but a file that exists and fails to parse is. Returns whether the file was
// found.
func ApplyFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if fc.InputFolder != nil {
		cfg.InputDir = NormalizeDirArg(*fc.InputFolder)
	}
	if fc.OutputFolder != nil {
		cfg.OutputDir = NormalizeDirArg(*fc.OutputFolder)
	}
	if fc.MaxFileSizeMB != nil {
		cfg.MaxFileSizeMB = *fc.MaxFileSizeMB
	}
	if fc.QualityJPEG != nil {
		cfg.QualityJPEG = *fc.QualityJPEG
	}
	if fc.QualityPNG != nil {
		cfg.QualityPNG = *fc.QualityPNG
	}
	if fc.ResizeEnabled != nil {
		cfg.ResizeEnabled = *fc.ResizeEnabled
	}
	if fc.MaxWidth != nil {
		cfg.MaxWidth = *fc.MaxWidth
	}
	if fc.MaxHeight != nil {
		cfg.MaxHeight = *fc.MaxHeight
	}
	if fc.PreserveMetadata != nil {
		cfg.PreserveMetadata = *fc.PreserveMetadata
	}
	if fc.SupportedFormats != nil {
		cfg.SupportedFormats = *fc.SupportedFormats
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return true, nil
}
