package processor

import (
	"image"

	"github.com/disintegration/imaging"
)

func (p *ImageProcessor) resizeToWidth(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
