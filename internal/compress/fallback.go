package compress

import (
	"image"

	"github.com/backmassage/picshrink/internal/codec"
)

// selectFallback handles the lossless format: encode as PNG first, and keep
// that unconditionally when it fits the budget. Over budget, a single JPEG
// re-encode at fallbackQuality is tried; it wins only when strictly smaller
// than the PNG bytes. There is no budget re-check and no quality stepping on
// the fallback branch, so the returned bytes are never larger than the
// lossless encoding.
func selectFallback(img image.Image, fallbackQuality int, targetBytes int64) ([]byte, codec.Format, error) {
	lossless, err := codec.EncodeBytes(img, codec.PNG, 0)
	if err != nil {
		return nil, codec.Unknown, err
	}
	if int64(len(lossless)) <= targetBytes {
		return lossless, codec.PNG, nil
	}

	lossy, err := codec.EncodeBytes(flatten(img), codec.JPEG, fallbackQuality)
	if err != nil {
		return nil, codec.Unknown, err
	}
	if len(lossy) < len(lossless) {
		return lossy, codec.JPEG, nil
	}
	return lossless, codec.PNG, nil
}
