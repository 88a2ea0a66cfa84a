package codec

import "fmt"

// DecodeError reports an unreadable, corrupt, or unsupported source image.
type DecodeError struct {
	Name string // format name reported by the decoder, when known
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode: unsupported format %q", e.Name)
	}
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an encoder failure, including the codec rejecting the
// image or the format having no encoder at all.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("encode %s: no encoder for format", e.Format)
	}
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
