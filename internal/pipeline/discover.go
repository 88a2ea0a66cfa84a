package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/picshrink/internal/config"
)

// Discover lists the image files directly inside inputDir whose extension is
// in exts (case-insensitive). The batch deliberately does not recurse:
// outputs mirror input file names 1:1 in a flat output folder. Paths are
// returned sorted lexicographically for deterministic processing order.
func Discover(inputDir string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if norm := config.NormalizeExtension(ext); norm != "" {
			allowed[norm] = true
		}
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
