package compress

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/backmassage/picshrink/internal/codec"
)

const (
	// qualityFloor is the lowest JPEG quality the search will use. If the
	// encoding still exceeds the budget here, it is returned anyway.
	qualityFloor = 10
	// qualityStep is the fixed decrement between attempts.
	qualityStep = 5
)

// searchQuality encodes img as JPEG starting at startQuality and steps the
// quality down until the encoded size fits targetBytes or the floor is
// reached. The bytes of the last attempt and the quality that produced them
// are returned; the result may still exceed the budget at the floor, which is
// accepted rather than treated as an error.
func searchQuality(img image.Image, startQuality int, targetBytes int64) ([]byte, int, error) {
	flat := flatten(img)

	quality := startQuality
	data, err := codec.EncodeBytes(flat, codec.JPEG, quality)
	if err != nil {
		return nil, 0, err
	}

	for int64(len(data)) > targetBytes && quality > qualityFloor {
		quality -= qualityStep
		if quality < qualityFloor {
			quality = qualityFloor
		}
		data, err = codec.EncodeBytes(flat, codec.JPEG, quality)
		if err != nil {
			return nil, 0, err
		}
	}
	return data, quality, nil
}

// flatten normalizes img to an opaque raster so the JPEG encoder never sees
// alpha or palette color modes. Opaque images pass through untouched;
// anything else is composited over white once, before the first encode
// attempt rather than per iteration.
func flatten(img image.Image) image.Image {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
