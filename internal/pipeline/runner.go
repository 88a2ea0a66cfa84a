// Package pipeline orchestrates file discovery, per-file compression, and
// batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/picshrink/internal/compress"
	"github.com/backmassage/picshrink/internal/config"
	"github.com/backmassage/picshrink/internal/display"
	"github.com/backmassage/picshrink/internal/logging"
)

// Run is the top-level batch entry point. It discovers files, fans them out
// to cfg.Workers parallel compressors (1 = sequential), and returns aggregate
// stats. Files are independent, so parallelism only changes throughput, never
// results; each file's outcome is logged as it completes.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir, cfg.SupportedFormats)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}

	stats.Total = len(files)
	if len(files) == 0 {
		log.Warn("No supported images found in %s", cfg.InputDir)
		return stats
	}

	logBatchHeader(cfg, log, len(files))

	results := make([]compress.Result, len(files))
	dispatched := len(files)

	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)

	var mu sync.Mutex
	current := 0

	for i, path := range files {
		// Cancellation stops dispatching new files; files already being
		// written are left to finish so no output is corrupted.
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			dispatched = i
			break
		}

		i, path := i, path
		g.Go(func() error {
			base := filepath.Base(path)

			mu.Lock()
			current++
			log.Info("[%d/%d] %s", current, len(files), base)
			mu.Unlock()

			results[i] = processFile(cfg, log, path, base)
			return nil
		})
	}
	// Workers never return errors; per-file failures live in the results.
	_ = g.Wait()

	for _, res := range results[:dispatched] {
		switch res.Status {
		case compress.StatusCompressed:
			stats.Compressed++
		case compress.StatusSkipped:
			stats.Skipped++
		case compress.StatusError:
			stats.Failed++
		}
		stats.TotalInputBytes += res.OriginalSize
		stats.TotalOutputBytes += res.CompressedSize
	}

	logSummary(cfg, log, &stats)
	return stats
}

// processFile handles one image: skip-existing check, dry-run, or the real
// compression pipeline, plus the per-file log line.
func processFile(cfg *config.Config, log *logging.Logger, path, base string) compress.Result {
	outputPath := filepath.Join(cfg.OutputDir, base)

	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("  Skip (exists): %s", base)
			return compress.Result{Status: compress.StatusSkipped}
		}
	}

	if cfg.DryRun {
		log.Success("  [DRY] Would compress %s", base)
		return compress.Result{Status: compress.StatusCompressed}
	}

	res := compress.Process(path, outputPath, cfg)

	switch res.Status {
	case compress.StatusSkipped:
		log.Info("  Under budget (%s), copied as-is", display.FormatBytes(res.OriginalSize))
	case compress.StatusCompressed:
		qualityNote := ""
		if res.Quality > 0 {
			qualityNote = fmt.Sprintf(" q=%d", res.Quality)
		}
		log.Success("  %s%s: %s -> %s (saved %s)",
			res.Format, qualityNote,
			display.FormatBytes(res.OriginalSize),
			display.FormatBytes(res.CompressedSize),
			display.FormatSavings(res.SavingsPercent))
	case compress.StatusError:
		log.Error("  %v", res.Err)
	}
	return res
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, total int) {
	log.Info("Found %d images", total)
	log.Info("Size budget: %s per file", display.FormatBytes(compress.TargetBytes(cfg.MaxFileSizeMB)))
	log.Info("Quality: JPEG %d, PNG fallback %d", cfg.QualityJPEG, cfg.QualityPNG)
	if cfg.ResizeEnabled {
		log.Info("Resize: fit within %dx%d", cfg.MaxWidth, cfg.MaxHeight)
	}
	if cfg.Workers > 1 {
		log.Info("Workers: %d", cfg.Workers)
	}
	log.Debug(cfg.Verbose, "Formats: %s", strings.Join(cfg.SupportedFormats, " "))
	if cfg.SkipExisting {
		log.Debug(cfg.Verbose, "Existing outputs are kept (use --force to overwrite)")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d compressed, %d skipped, %d failed", stats.Compressed, stats.Skipped, stats.Failed)

	if cfg.DryRun {
		log.Info("Space saved: n/a (dry run)")
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("Space saved: %s (%s) (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatSavings(stats.SavingsPercent()),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("Space saved: -%s (overall output is larger)",
			display.FormatBytes(-saved))
	}
}
