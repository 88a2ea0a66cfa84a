package compress

import (
	"image"

	"github.com/disintegration/imaging"
)

// fitWithin downscales img to fit inside maxW x maxH, preserving aspect
// ratio, using Lanczos resampling. Images already inside the bounds are
// returned unchanged; nothing is ever upscaled.
func fitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
