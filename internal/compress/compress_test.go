package compress

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/picshrink/internal/codec"
	"github.com/backmassage/picshrink/internal/config"
)

// writeImage encodes img into path in the given format.
func writeImage(t *testing.T, path string, img image.Image, format codec.Format, quality int) {
	t.Helper()
	data, err := codec.EncodeBytes(img, format, quality)
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.MaxFileSizeMB = 1
	return cfg
}

func TestTargetBytes(t *testing.T) {
	tests := []struct {
		mb   float64
		want int64
	}{
		{1, 1048576},
		{0.5, 524288},
		{2.5, 2621440},
		{10, 10485760},
	}
	for _, tt := range tests {
		if got := TargetBytes(tt.mb); got != tt.want {
			t.Errorf("TargetBytes(%v) = %d, want %d", tt.mb, got, tt.want)
		}
	}
}

func TestSavingsPercent(t *testing.T) {
	tests := []struct {
		original, compressed int64
		want                 float64
	}{
		{100, 50, 50},
		{100, 100, 0},
		{100, 150, -50},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := savingsPercent(tt.original, tt.compressed); got != tt.want {
			t.Errorf("savingsPercent(%d, %d) = %v, want %v", tt.original, tt.compressed, got, tt.want)
		}
	}
}

func TestProcess_SkipUnderBudget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "small.jpg")
	out := filepath.Join(dir, "out", "small.jpg")
	os.MkdirAll(filepath.Dir(out), 0o755)

	writeImage(t, in, noisyImage(32, 32), codec.JPEG, 85)
	cfg := testConfig()

	res := Process(in, out, &cfg)

	if res.Status != StatusSkipped {
		t.Fatalf("status = %v (%v), want skipped", res.Status, res.Err)
	}
	if res.OriginalSize != res.CompressedSize {
		t.Errorf("sizes differ on skip: %d vs %d", res.OriginalSize, res.CompressedSize)
	}
	if res.SavingsPercent != 0 {
		t.Errorf("savings = %v, want 0", res.SavingsPercent)
	}

	inBytes, _ := os.ReadFile(in)
	outBytes, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !bytes.Equal(inBytes, outBytes) {
		t.Error("skip output is not byte-identical to input")
	}
}

func TestProcess_SkipIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "small.png")
	out := filepath.Join(dir, "small_out.png")

	writeImage(t, in, flatImage(16, 16, color.RGBA{R: 0x20, G: 0x40, B: 0x60}), codec.PNG, 0)
	cfg := testConfig()

	if res := Process(in, out, &cfg); res.Status != StatusSkipped {
		t.Fatalf("first run: status = %v", res.Status)
	}
	first, _ := os.ReadFile(out)

	if res := Process(in, out, &cfg); res.Status != StatusSkipped {
		t.Fatalf("second run: status = %v", res.Status)
	}
	second, _ := os.ReadFile(out)

	if !bytes.Equal(first, second) {
		t.Error("repeated runs produced different output bytes")
	}
}

func TestProcess_JPEGQualitySearch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "big.jpg")
	out := filepath.Join(dir, "big_out.jpg")

	writeImage(t, in, noisyImage(300, 300), codec.JPEG, 100)

	cfg := testConfig()
	cfg.MaxFileSizeMB = 0.03 // well below a q100 noise JPEG

	res := Process(in, out, &cfg)

	if res.Status != StatusCompressed {
		t.Fatalf("status = %v (%v), want compressed", res.Status, res.Err)
	}
	if res.Format != codec.JPEG {
		t.Errorf("format = %v, want JPEG", res.Format)
	}
	if res.Quality < 10 || res.Quality > cfg.QualityJPEG {
		t.Errorf("quality = %d, want within [10, %d]", res.Quality, cfg.QualityJPEG)
	}

	outInfo, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if res.CompressedSize != outInfo.Size() {
		t.Errorf("reported size %d != on-disk size %d", res.CompressedSize, outInfo.Size())
	}
	if res.CompressedSize >= res.OriginalSize {
		t.Errorf("output (%d) not smaller than input (%d)", res.CompressedSize, res.OriginalSize)
	}
}

func TestProcess_PNGFallbackToJPEG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "noise.png")
	out := filepath.Join(dir, "noise_out.png")

	writeImage(t, in, noisyImage(200, 200), codec.PNG, 0)

	cfg := testConfig()
	cfg.MaxFileSizeMB = 0.01

	res := Process(in, out, &cfg)

	if res.Status != StatusCompressed {
		t.Fatalf("status = %v (%v), want compressed", res.Status, res.Err)
	}
	if res.Format != codec.JPEG {
		t.Errorf("format = %v, want JPEG (lossy substitution)", res.Format)
	}
	if res.Quality != cfg.QualityPNG {
		t.Errorf("quality = %d, want fallback quality %d", res.Quality, cfg.QualityPNG)
	}
	if res.CompressedSize >= res.OriginalSize {
		t.Errorf("fallback output (%d) not smaller than original (%d)",
			res.CompressedSize, res.OriginalSize)
	}
}

func TestProcess_PNGKeptWhenJPEGLarger(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "flat.png")
	out := filepath.Join(dir, "flat_out.png")

	writeImage(t, in, flatImage(64, 64, color.RGBA{R: 0xff, G: 0xff, B: 0xff}), codec.PNG, 0)

	cfg := testConfig()
	cfg.MaxFileSizeMB = 0.00001 // ~10 bytes, unreachable

	res := Process(in, out, &cfg)

	if res.Status != StatusCompressed {
		t.Fatalf("status = %v (%v), want compressed", res.Status, res.Err)
	}
	if res.Format != codec.PNG {
		t.Errorf("format = %v, want PNG kept (JPEG fallback is larger for flat images)", res.Format)
	}
	if res.Quality != 0 {
		t.Errorf("quality = %d, want 0 for a PNG result", res.Quality)
	}
}

func TestProcess_PassthroughFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "noise.bmp")
	out := filepath.Join(dir, "noise_out.bmp")

	writeImage(t, in, noisyImage(128, 128), codec.BMP, 0)

	cfg := testConfig()
	cfg.MaxFileSizeMB = 0.001 // over budget, but passthrough makes no size promise

	res := Process(in, out, &cfg)

	if res.Status != StatusCompressed {
		t.Fatalf("status = %v (%v), want compressed", res.Status, res.Err)
	}
	if res.Format != codec.BMP {
		t.Errorf("format = %v, want BMP (passthrough keeps the format)", res.Format)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestProcess_ResizeApplied(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "wide.jpg")
	out := filepath.Join(dir, "wide_out.jpg")

	writeImage(t, in, noisyImage(400, 200), codec.JPEG, 100)

	cfg := testConfig()
	cfg.MaxFileSizeMB = 0.01
	cfg.ResizeEnabled = true
	cfg.MaxWidth = 100
	cfg.MaxHeight = 100

	res := Process(in, out, &cfg)
	if res.Status != StatusCompressed {
		t.Fatalf("status = %v (%v), want compressed", res.Status, res.Err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := codec.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 100 || b.Dy() > 100 {
		t.Errorf("output %dx%d exceeds resize bounds 100x100", b.Dx(), b.Dy())
	}
}

func TestProcess_ResizeSkippedForUnderBudgetFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "small.jpg")
	out := filepath.Join(dir, "small_out.jpg")

	writeImage(t, in, noisyImage(400, 200), codec.JPEG, 50)

	cfg := testConfig()
	cfg.ResizeEnabled = true
	cfg.MaxWidth = 100
	cfg.MaxHeight = 100

	// Under budget, so the file is copied and keeps its dimensions even
	// though it exceeds the resize bounds.
	res := Process(in, out, &cfg)
	if res.Status != StatusSkipped {
		t.Fatalf("status = %v, want skipped", res.Status)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := codec.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("skip path must not resize: width = %d, want 400", img.Bounds().Dx())
	}
}

func TestProcess_CorruptInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.jpg")
	out := filepath.Join(dir, "broken_out.jpg")

	if err := os.WriteFile(in, []byte("definitely not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()

	res := Process(in, out, &cfg)
	if res.Status != StatusError {
		t.Fatalf("status = %v, want error", res.Status)
	}
	if res.Err == nil {
		t.Fatal("error result without an error")
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("no output should be written for a corrupt input")
	}
}

func TestProcess_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()

	res := Process(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "out.jpg"), &cfg)
	if res.Status != StatusError || res.Err == nil {
		t.Fatalf("status = %v, err = %v; want error result", res.Status, res.Err)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSkipped, "skipped"},
		{StatusCompressed, "compressed"},
		{StatusError, "error"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
