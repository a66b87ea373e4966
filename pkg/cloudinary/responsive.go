package cloudinary

import (
	"strconv"
	"strings"
)

// Breakpoints shared with the site stylesheet.
const (
	MobileBreakpoint  = 768
	DesktopBreakpoint = 1024
)

// Default tier widths.
const (
	DefaultMobileWidth  = 800
	DefaultTabletWidth  = 1536
	DefaultDesktopWidth = 2048
)

const defaultSlotSize = "100vw"

// TierWidths overrides the pixel width requested per tier. Zero fields use
// the defaults.
type TierWidths struct {
	Mobile  int `json:"mobile,omitempty"`
	Tablet  int `json:"tablet,omitempty"`
	Desktop int `json:"desktop,omitempty"`
}

func (w TierWidths) withDefaults() TierWidths {
	if w.Mobile == 0 {
		w.Mobile = DefaultMobileWidth
	}
	if w.Tablet == 0 {
		w.Tablet = DefaultTabletWidth
	}
	if w.Desktop == 0 {
		w.Desktop = DefaultDesktopWidth
	}
	return w
}

// ResponsiveOptions configures the tiered helpers. Options.Width and
// Options.DPR are replaced per tier.
type ResponsiveOptions struct {
	Src string
	Options
	Sizes      TierWidths
	DisableDPR bool
}

// ResponsiveURLs holds one delivery URL per tier.
type ResponsiveURLs struct {
	Mobile  string `json:"mobile"`
	Tablet  string `json:"tablet"`
	Desktop string `json:"desktop"`
}

// SlotSizes are the CSS lengths placed in the sizes attribute.
type SlotSizes struct {
	Mobile  string `json:"mobile,omitempty"`
	Tablet  string `json:"tablet,omitempty"`
	Desktop string `json:"desktop,omitempty"`
}

// ImageProps is ready to place on an <img> element.
type ImageProps struct {
	Src      string `json:"src"`
	SrcSet   string `json:"srcSet"`
	Sizes    string `json:"sizes"`
	Loading  string `json:"loading"`
	Decoding string `json:"decoding"`
}

func (b *Builder) tierURL(opts ResponsiveOptions, width int, dpr string) string {
	o := opts.Options
	o.Width = width
	o.DPR = dpr
	return b.GetURL(opts.Src, o)
}

// GetResponsiveURLs returns the mobile, tablet and desktop URLs, each asking
// the CDN to pick the pixel ratio.
func (b *Builder) GetResponsiveURLs(opts ResponsiveOptions) ResponsiveURLs {
	widths := opts.Sizes.withDefaults()
	return ResponsiveURLs{
		Mobile:  b.tierURL(opts, widths.Mobile, DPRAuto),
		Tablet:  b.tierURL(opts, widths.Tablet, DPRAuto),
		Desktop: b.tierURL(opts, widths.Desktop, DPRAuto),
	}
}

// GenerateSrcSet returns a srcset with a 1x entry per tier and, unless
// DisableDPR is set, a 2x entry described at double the width.
func (b *Builder) GenerateSrcSet(opts ResponsiveOptions) string {
	widths := opts.Sizes.withDefaults()

	entries := make([]string, 0, 6)
	for _, w := range []int{widths.Mobile, widths.Tablet, widths.Desktop} {
		entries = append(entries, b.tierURL(opts, w, "1.0")+" "+strconv.Itoa(w)+"w")
		if !opts.DisableDPR {
			entries = append(entries, b.tierURL(opts, w, "2.0")+" "+strconv.Itoa(w*2)+"w")
		}
	}
	return strings.Join(entries, ", ")
}

// GenerateSizes returns the sizes attribute for the three tiers.
func GenerateSizes(slots SlotSizes) string {
	if slots.Mobile == "" {
		slots.Mobile = defaultSlotSize
	}
	if slots.Tablet == "" {
		slots.Tablet = defaultSlotSize
	}
	if slots.Desktop == "" {
		slots.Desktop = defaultSlotSize
	}

	return "(max-width: " + strconv.Itoa(MobileBreakpoint-1) + "px) " + slots.Mobile +
		", (max-width: " + strconv.Itoa(DesktopBreakpoint-1) + "px) " + slots.Tablet +
		", " + slots.Desktop
}

// GetOptimizedImageProps bundles src, srcset and sizes with lazy loading and
// async decoding.
func (b *Builder) GetOptimizedImageProps(opts ResponsiveOptions, slots SlotSizes) ImageProps {
	urls := b.GetResponsiveURLs(opts)
	return ImageProps{
		Src:      urls.Desktop,
		SrcSet:   b.GenerateSrcSet(opts),
		Sizes:    GenerateSizes(slots),
		Loading:  "lazy",
		Decoding: "async",
	}
}

// GetBackgroundImageURLs wraps each tier URL for use as a CSS value.
func (b *Builder) GetBackgroundImageURLs(opts ResponsiveOptions) ResponsiveURLs {
	urls := b.GetResponsiveURLs(opts)
	return ResponsiveURLs{
		Mobile:  "url(" + urls.Mobile + ")",
		Tablet:  "url(" + urls.Tablet + ")",
		Desktop: "url(" + urls.Desktop + ")",
	}
}

func GetResponsiveURLs(opts ResponsiveOptions) ResponsiveURLs {
	return defaultBuilder.GetResponsiveURLs(opts)
}

func GenerateSrcSet(opts ResponsiveOptions) string {
	return defaultBuilder.GenerateSrcSet(opts)
}

func GetOptimizedImageProps(opts ResponsiveOptions, slots SlotSizes) ImageProps {
	return defaultBuilder.GetOptimizedImageProps(opts, slots)
}

func GetBackgroundImageURLs(opts ResponsiveOptions) ResponsiveURLs {
	return defaultBuilder.GetBackgroundImageURLs(opts)
}
