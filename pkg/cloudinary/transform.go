package cloudinary

import (
	"strconv"
	"strings"
)

const (
	QualityAuto = "auto"
	FormatAuto  = "auto"
	DPRAuto     = "auto"
)

// Crop modes understood by the CDN. Options.Crop accepts any string.
const (
	CropFill  = "fill"
	CropFit   = "fit"
	CropLimit = "limit"
)

// Options describes the transformation applied to one delivered image.
// Zero values mean "not requested", except Quality and Format which default to
// auto.
type Options struct {
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	Crop       string   `json:"crop,omitempty"`
	Quality    string   `json:"quality,omitempty"`
	Format     string   `json:"format,omitempty"`
	Gravity    string   `json:"gravity,omitempty"`
	DPR        string   `json:"dpr,omitempty"`
	Additional []string `json:"additional,omitempty"`
}

// BuildTransformations renders opts as comma separated directives. Values are
// not validated; the CDN rejects what it does not understand.
func BuildTransformations(opts Options) string {
	directives := make([]string, 0, 7+len(opts.Additional))

	if opts.Width != 0 {
		directives = append(directives, "w_"+strconv.Itoa(opts.Width))
	}
	if opts.Height != 0 {
		directives = append(directives, "h_"+strconv.Itoa(opts.Height))
	}
	if opts.Crop != "" {
		directives = append(directives, "c_"+opts.Crop)
	}

	quality := opts.Quality
	if quality == "" {
		quality = QualityAuto
	}
	directives = append(directives, "q_"+quality)

	format := opts.Format
	if format == "" {
		format = FormatAuto
	}
	directives = append(directives, "f_"+format)

	if opts.Gravity != "" {
		directives = append(directives, "g_"+opts.Gravity)
	}
	if opts.DPR != "" {
		directives = append(directives, "dpr_"+opts.DPR)
	}

	directives = append(directives, opts.Additional...)

	return strings.Join(directives, ",")
}
