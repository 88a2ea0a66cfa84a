// Package codec adapts image decoding and encoding behind a closed set of
// supported formats. Each format carries a Kind that tells the compressor how
// it can be driven toward a size budget: JPEG exposes a quality parameter,
// PNG is lossless with a lossy substitution fallback, and everything else is
// re-encoded as-is with no size guarantee.
package codec

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp" // register WebP with image.Decode
)

// Format identifies one of the supported image formats.
type Format int

const (
	Unknown Format = iota
	JPEG
	PNG
	GIF
	BMP
	TIFF
	WebP
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return "unknown"
	}
}

// Kind classifies how a format is driven toward a byte budget.
type Kind int

const (
	// KindPassthrough formats are re-encoded with default settings; the
	// output may be any size.
	KindPassthrough Kind = iota
	// KindLossyQuality formats expose a 0-100 quality parameter the
	// compressor can step down until the budget is met.
	KindLossyQuality
	// KindLosslessFallback formats are encoded losslessly first and may be
	// substituted with a single lossy re-encode when over budget.
	KindLosslessFallback
)

// Kind returns the compression strategy for the format. The mapping is fixed:
// JPEG is the quality-parameterized format, PNG the lossless one with a JPEG
// fallback, and the remaining formats pass through.
func (f Format) Kind() Kind {
	switch f {
	case JPEG:
		return KindLossyQuality
	case PNG:
		return KindLosslessFallback
	default:
		return KindPassthrough
	}
}

// decodeNames maps the names reported by image.Decode to Formats.
var decodeNames = map[string]Format{
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"bmp":  BMP,
	"tiff": TIFF,
	"webp": WebP,
}

// extFormats maps lowercase file extensions to Formats.
var extFormats = map[string]Format{
	".jpg":  JPEG,
	".jpeg": JPEG,
	".png":  PNG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// FromExtension returns the Format for a file extension (with leading dot,
// any case), or Unknown if the extension is not one we handle.
func FromExtension(ext string) Format {
	return extFormats[strings.ToLower(ext)]
}

// Decode reads an image from r, sniffing the format from the stream contents.
// The source format tag is returned alongside the decoded raster so the
// compressor can dispatch on it.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, Unknown, &DecodeError{Err: err}
	}
	f, ok := decodeNames[name]
	if !ok {
		return nil, Unknown, &DecodeError{Name: name}
	}
	return img, f, nil
}

// Encode writes img to w in format f. The quality parameter applies to JPEG
// and is ignored for the other formats: PNG uses best compression, TIFF uses
// Deflate, WebP is encoded losslessly, and GIF/BMP take their defaults.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	var err error
	switch f {
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case GIF:
		err = gif.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case WebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return &EncodeError{Format: f}
	}
	if err != nil {
		return &EncodeError{Format: f, Err: err}
	}
	return nil
}

// EncodeBytes encodes img to an in-memory byte slice. The compressor works on
// byte lengths, so this is the form it uses for every trial encode.
func EncodeBytes(img image.Image, f Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
