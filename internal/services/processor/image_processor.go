package processor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/studio-site/internal/models"
	_ "golang.org/x/image/webp"
)

const defaultQuality = 82

// DerivativeImage is one encoded width tier.
type DerivativeImage struct {
	Width  int
	Height int
	Format string
	Buffer *bytes.Buffer
}

type ImageProcessor struct {
	quality int
}

func NewImageProcessor(quality int) *ImageProcessor {
	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}
	return &ImageProcessor{quality: quality}
}

// GenerateDerivatives decodes data once and encodes a copy per requested
// width. Widths wider than the source keep the source width, and a width
// already produced is not encoded twice.
func (p *ImageProcessor) GenerateDerivatives(data []byte, req *models.DerivativeRequest) ([]DerivativeImage, error) {
	_, sourceFormat, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	outputFormat := p.outputFormat(sourceFormat, req.Format)
	quality := p.getQuality(req)

	derivatives := make([]DerivativeImage, 0, len(req.Widths))
	seen := make(map[int]bool, len(req.Widths))
	for _, width := range req.Widths {
		resized := p.resizeToWidth(img, width)
		if seen[resized.Bounds().Dx()] {
			continue
		}
		seen[resized.Bounds().Dx()] = true

		buffer := &bytes.Buffer{}
		if err := p.encodeImage(buffer, resized, outputFormat, quality); err != nil {
			return nil, fmt.Errorf("failed to encode %dw derivative: %w", width, err)
		}

		bounds := resized.Bounds()
		derivatives = append(derivatives, DerivativeImage{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: outputFormat,
			Buffer: buffer,
		})
	}

	return derivatives, nil
}

func (p *ImageProcessor) outputFormat(source, requested string) string {
	if requested != "" {
		return requested
	}
	if source == models.FormatPNG {
		return models.FormatPNG
	}
	return models.FormatJPEG
}

func (p *ImageProcessor) getQuality(req *models.DerivativeRequest) int {
	if req.Quality > 0 {
		return req.Quality
	}
	return p.quality
}
