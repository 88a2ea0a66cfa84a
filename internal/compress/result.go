package compress

import "github.com/backmassage/picshrink/internal/codec"

// Status classifies the outcome of processing one file.
type Status int

const (
	// StatusSkipped means the file was already under budget and was copied
	// through byte-for-byte.
	StatusSkipped Status = iota
	// StatusCompressed means a freshly encoded file was written.
	StatusCompressed
	// StatusError means the file could not be processed; the batch goes on.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCompressed:
		return "compressed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the per-file outcome record handed to the batch runner. It is
// produced once at the end of a pipeline call and not retained here.
type Result struct {
	Status Status

	// Format is the format actually written to disk. On the PNG fallback
	// path this can differ from the source format.
	Format codec.Format

	// Quality is the JPEG quality the encoder ended up using; 0 when the
	// output was not quality-driven (skips, PNGs, passthrough formats).
	Quality int

	OriginalSize   int64
	CompressedSize int64
	SavingsPercent float64

	// Err is set only when Status is StatusError.
	Err error
}
