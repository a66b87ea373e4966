package models

import "time"

// DerivativeRequest asks for width-tiered copies of a self-hosted image.
type DerivativeRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
	Widths   []int  `json:"widths,omitempty" binding:"omitempty,max=6,dive,min=1,max=4096"`
	Format   string `json:"format,omitempty" binding:"omitempty,oneof=jpeg png"`
	Quality  int    `json:"quality,omitempty" binding:"omitempty,min=1,max=100"`
}

type DerivativeJob struct {
	ID        string            `json:"id"`
	Request   DerivativeRequest `json:"request"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Results   []Derivative      `json:"results,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type Derivative struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)
