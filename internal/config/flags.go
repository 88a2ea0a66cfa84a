package config

// This file implements CLI flag parsing and help text. Precedence is
// defaults < config file < flags, so flag values are captured into a staging
// struct during Parse and copied onto cfg only for flags the user actually
// set (tracked via flag.Visit). Input and output may also be given as two
// positional args.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg, loading the YAML config file first so
// flags override it. On --help or --version it prints and exits. On error it
// returns non-nil (e.g. unknown flag, malformed config file).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("picshrink", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var staged stagedFlags
	defineCompressionFlags(fs, &staged)
	defineResizeFlags(fs, &staged)
	defineBehaviorFlags(fs, &staged)
	defineDisplayFlags(fs, &staged)
	defineUtilityFlags(fs, &staged)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if staged.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if staged.showVersion {
		fmt.Fprintln(os.Stdout, "picshrink v"+version)
		os.Exit(0)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Config file layer. An explicit --config pointing at a missing file is
	// an error; the implicit default is allowed to be absent.
	found, err := ApplyFile(cfg, staged.configPath)
	if err != nil {
		return err
	}
	if !found && (set["config"] || set["c"]) {
		return fmt.Errorf("config file %q not found", staged.configPath)
	}

	applyFlagOverrides(cfg, &staged, set)
	return parsePositionalArgs(fs, cfg)
}

// stagedFlags holds raw flag values until we know which were set.
type stagedFlags struct {
	configPath string

	input       string
	output      string
	maxSizeMB   float64
	quality     int
	jpegQuality int
	pngQuality  int

	resize bool
	width  int
	height int

	workers int
	dryRun  bool
	force   bool

	logFile    string
	forceColor bool
	noColor    bool
	verbose    bool

	showVersion bool
	showHelp    bool
}

// defineCompressionFlags registers -i/--input, -o/--output, -m/--max-size and the quality flags.
func defineCompressionFlags(fs *flag.FlagSet, s *stagedFlags) {
	fs.StringVar(&s.input, "input", "", "Input folder with images")
	fs.StringVar(&s.input, "i", "", "Same as --input")
	fs.StringVar(&s.output, "output", "", "Output folder for compressed images")
	fs.StringVar(&s.output, "o", "", "Same as --output")
	fs.Float64Var(&s.maxSizeMB, "max-size", 0, "Per-file size budget in MB")
	fs.Float64Var(&s.maxSizeMB, "m", 0, "Same as --max-size")
	fs.IntVar(&s.quality, "quality", -1, "Quality 0-100 (sets both jpeg and png)")
	fs.IntVar(&s.quality, "q", -1, "Same as --quality")
	fs.IntVar(&s.jpegQuality, "jpeg-quality", -1, "JPEG quality 0-100")
	fs.IntVar(&s.pngQuality, "png-quality", -1, "Fallback quality 0-100 for PNGs over budget")
}

// defineResizeFlags registers --resize, --width, --height.
func defineResizeFlags(fs *flag.FlagSet, s *stagedFlags) {
	fs.BoolVar(&s.resize, "resize", false, "Downscale oversized images before compressing")
	fs.IntVar(&s.width, "width", 0, "Maximum width in pixels (with --resize)")
	fs.IntVar(&s.height, "height", 0, "Maximum height in pixels (with --resize)")
}

// defineBehaviorFlags registers --workers, --dry-run, --force.
func defineBehaviorFlags(fs *flag.FlagSet, s *stagedFlags) {
	fs.IntVar(&s.workers, "workers", 0, "Files processed in parallel (default: 1)")
	fs.BoolVar(&s.dryRun, "dry-run", false, "Preview only; do not write output files")
	fs.BoolVar(&s.dryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&s.force, "force", false, "Overwrite existing output files")
	fs.BoolVar(&s.force, "f", false, "Same as --force")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, s *stagedFlags) {
	fs.BoolVar(&s.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&s.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&s.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&s.verbose, "v", false, "Same as --verbose")
	fs.StringVar(&s.logFile, "log", "", "Append logs to file")
	fs.StringVar(&s.logFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, s *stagedFlags) {
	fs.StringVar(&s.configPath, "config", DefaultConfigFile, "Path to YAML config file")
	fs.StringVar(&s.configPath, "c", DefaultConfigFile, "Same as --config")
	fs.BoolVar(&s.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&s.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&s.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&s.showHelp, "h", false, "Same as --help")
}

// applyFlagOverrides copies values the user set on the command line onto cfg.
func applyFlagOverrides(cfg *Config, s *stagedFlags, set map[string]bool) {
	if set["input"] || set["i"] {
		cfg.InputDir = NormalizeDirArg(s.input)
	}
	if set["output"] || set["o"] {
		cfg.OutputDir = NormalizeDirArg(s.output)
	}
	if set["max-size"] || set["m"] {
		cfg.MaxFileSizeMB = s.maxSizeMB
	}
	if set["quality"] || set["q"] {
		cfg.QualityJPEG = s.quality
		cfg.QualityPNG = s.quality
	}
	if set["jpeg-quality"] {
		cfg.QualityJPEG = s.jpegQuality
	}
	if set["png-quality"] {
		cfg.QualityPNG = s.pngQuality
	}
	if s.resize {
		cfg.ResizeEnabled = true
	}
	if set["width"] {
		cfg.MaxWidth = s.width
	}
	if set["height"] {
		cfg.MaxHeight = s.height
	}
	if set["workers"] {
		cfg.Workers = s.workers
	}
	if s.dryRun {
		cfg.DryRun = true
	}
	if s.force {
		cfg.SkipExisting = false
	}
	if set["log"] || set["l"] {
		cfg.LogFile = s.logFile
	}
	if s.noColor {
		cfg.ColorMode = ColorNever
	} else if s.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if s.verbose {
		cfg.Verbose = true
	}
}

// parsePositionalArgs accepts an optional "input_dir output_dir" pair after
// the flags, overriding both the config file and -i/-o.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 2:
		cfg.InputDir = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(args[1])
		return nil
	default:
		return fmt.Errorf("expected no positional args or exactly input_dir and output_dir, got %d", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "picshrink v" + version + " - batch image compressor with a per-file size budget"},
		{"", ""},
		{"  picshrink [OPTIONS] [input_dir output_dir]", ""},
		{"", ""},
		{"Compression", ""},
		{"  -i, --input <dir>", "Input folder (default: input)"},
		{"  -o, --output <dir>", "Output folder (default: output)"},
		{"  -m, --max-size <mb>", "Per-file size budget in MB (default: 1)"},
		{"  -q, --quality <0-100>", "Quality for both JPEG and PNG fallback (default: 85)"},
		{"  --jpeg-quality <0-100>", "JPEG starting quality"},
		{"  --png-quality <0-100>", "Fallback quality for PNGs over budget"},
		{"", ""},
		{"Resize", ""},
		{"  --resize", "Downscale oversized images before compressing"},
		{"  --width <px>", "Maximum width (default: 1920)"},
		{"  --height <px>", "Maximum height (default: 1080)"},
		{"", ""},
		{"Behavior", ""},
		{"  --workers <n>", "Files processed in parallel (default: 1)"},
		{"  -d, --dry-run", "Preview only; do not write output files"},
		{"  -f, --force", "Overwrite existing output files"},
		{"  -c, --config <file>", "YAML config file (default: " + DefaultConfigFile + ")"},
		{"", ""},
		{"Display", ""},
		{"  --color / --no-color", "Force or disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <file>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	var b strings.Builder
	for _, l := range lines {
		if l.flags == "" {
			b.WriteString(l.desc + "\n")
			continue
		}
		pad := col1 - len(l.flags)
		if pad < 2 {
			pad = 2
		}
		b.WriteString(l.flags + strings.Repeat(" ", pad) + l.desc + "\n")
	}
	fmt.Fprint(fs.Output(), b.String())
}
