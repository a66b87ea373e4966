package processor

import (
	"bytes"
	"fmt"
	"image"
)

// ValidateImage checks size limits and that data carries a decodable image
// header.
func (p *ImageProcessor) ValidateImage(data []byte, maxSize int64) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size %d", len(data), maxSize)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("invalid image format: %w", err)
	}

	return nil
}
