package models

import "github.com/phambaophuc/studio-site/pkg/cloudinary"

// ImageURLRequest is bound from the query string of the image API.
type ImageURLRequest struct {
	Src        string   `form:"src" binding:"required"`
	Width      int      `form:"width"`
	Height     int      `form:"height"`
	Crop       string   `form:"crop"`
	Quality    string   `form:"quality"`
	Format     string   `form:"format"`
	Gravity    string   `form:"gravity"`
	DPR        string   `form:"dpr"`
	Additional []string `form:"t"`
}

func (r ImageURLRequest) Options() cloudinary.Options {
	return cloudinary.Options{
		Width:      r.Width,
		Height:     r.Height,
		Crop:       r.Crop,
		Quality:    r.Quality,
		Format:     r.Format,
		Gravity:    r.Gravity,
		DPR:        r.DPR,
		Additional: r.Additional,
	}
}

type ResponsiveImageRequest struct {
	ImageURLRequest
	MobileWidth  int  `form:"mobile" binding:"omitempty,min=1"`
	TabletWidth  int  `form:"tablet" binding:"omitempty,min=1"`
	DesktopWidth int  `form:"desktop" binding:"omitempty,min=1"`
	DisableDPR   bool `form:"disable_dpr"`
}

func (r ResponsiveImageRequest) ResponsiveOptions() cloudinary.ResponsiveOptions {
	return cloudinary.ResponsiveOptions{
		Src:     r.Src,
		Options: r.Options(),
		Sizes: cloudinary.TierWidths{
			Mobile:  r.MobileWidth,
			Tablet:  r.TabletWidth,
			Desktop: r.DesktopWidth,
		},
		DisableDPR: r.DisableDPR,
	}
}

// SizesRequest carries the CSS slot sizes for the sizes attribute.
type SizesRequest struct {
	MobileSize  string `form:"mobile_size"`
	TabletSize  string `form:"tablet_size"`
	DesktopSize string `form:"desktop_size"`
}

func (r SizesRequest) SlotSizes() cloudinary.SlotSizes {
	return cloudinary.SlotSizes{
		Mobile:  r.MobileSize,
		Tablet:  r.TabletSize,
		Desktop: r.DesktopSize,
	}
}

type ImageURLResponse struct {
	Src      string `json:"src"`
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type SrcSetResponse struct {
	SrcSet string `json:"srcset"`
}

type SizesResponse struct {
	Sizes string `json:"sizes"`
}
