// Package compress implements the size-budgeted compression of a single
// image: skip-check, optional downscale, format dispatch, and the write-back.
// It consumes paths and a config and produces one Result per file; folder
// walking and aggregate reporting live in the pipeline package.
package compress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/picshrink/internal/codec"
	"github.com/backmassage/picshrink/internal/config"
)

// TargetBytes converts the configured megabyte budget to a byte ceiling. The
// budget is flat per file and does not scale with the original size.
func TargetBytes(maxSizeMB float64) int64 {
	return int64(maxSizeMB * 1024 * 1024)
}

// Process runs the whole per-image pipeline for one file and always returns
// a Result: decode and I/O failures are folded into a StatusError result
// here so a bad file can never abort the batch.
func Process(inputPath, outputPath string, cfg *config.Config) Result {
	res, err := process(inputPath, outputPath, cfg)
	if err != nil {
		return Result{Status: StatusError, Err: err}
	}
	return res
}

// process is the fallible pipeline body. Linear per file:
// decode -> size check -> (skip-copy | resize? -> compress) -> write -> report.
func process(inputPath, outputPath string, cfg *config.Config) (Result, error) {
	fi, err := os.Stat(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("stat %q: %w", inputPath, err)
	}
	originalSize := fi.Size()

	f, err := os.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("open %q: %w", inputPath, err)
	}
	img, srcFormat, err := codec.Decode(f)
	f.Close()
	if err != nil {
		return Result{}, fmt.Errorf("%q: %w", inputPath, err)
	}

	target := TargetBytes(cfg.MaxFileSizeMB)

	// Files already under budget are copied through byte-for-byte, which
	// also keeps all their metadata.
	if originalSize <= target {
		if err := copyFile(inputPath, outputPath, fi.ModTime()); err != nil {
			return Result{}, err
		}
		return Result{
			Status:         StatusSkipped,
			Format:         srcFormat,
			OriginalSize:   originalSize,
			CompressedSize: originalSize,
		}, nil
	}

	if cfg.ResizeEnabled {
		img = fitWithin(img, cfg.MaxWidth, cfg.MaxHeight)
	}

	// Dispatch on the source format's kind, chosen once per file.
	var (
		data      []byte
		outFormat = srcFormat
		quality   int
	)
	switch srcFormat.Kind() {
	case codec.KindLossyQuality:
		data, quality, err = searchQuality(img, cfg.QualityJPEG, target)
	case codec.KindLosslessFallback:
		data, outFormat, err = selectFallback(img, cfg.QualityPNG, target)
		if outFormat == codec.JPEG {
			quality = cfg.QualityPNG
		}
	default:
		data, err = codec.EncodeBytes(img, srcFormat, 0)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%q: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %q: %w", outputPath, err)
	}

	// Report the true on-disk size, not the in-memory encoded length.
	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("stat %q: %w", outputPath, err)
	}
	compressedSize := outInfo.Size()

	return Result{
		Status:         StatusCompressed,
		Format:         outFormat,
		Quality:        quality,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		SavingsPercent: savingsPercent(originalSize, compressedSize),
	}, nil
}

// savingsPercent is positive when the output shrank, negative when it grew.
func savingsPercent(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	return float64(original-compressed) / float64(original) * 100
}

// copyFile copies src to dst byte-for-byte and carries the source
// modification time over, so the skip path leaves the file and its metadata
// untouched.
func copyFile(src, dst string, modTime time.Time) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %q: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", dst, err)
	}
	return os.Chtimes(dst, time.Now(), modTime)
}
