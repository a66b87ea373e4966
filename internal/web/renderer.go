// Package web renders the studio pages from the content catalog.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/phambaophuc/studio-site/internal/content"
	"github.com/phambaophuc/studio-site/pkg/cloudinary"
)

// Widths for images that are not full-bleed.
const (
	logoWidth      = 160
	cardMobile     = 800
	cardTablet     = 768
	cardDesktop    = 960
	featureDesktop = 1280
	ogImageWidth   = 1200
)

type Renderer struct {
	site   *content.Site
	images *cloudinary.Builder
	tmpl   *template.Template
	now    func() time.Time
}

type pageData struct {
	Site *content.Site
	Page *content.Page
	Year int
}

// imageAttrs mirrors cloudinary.ImageProps with template-safe types.
type imageAttrs struct {
	Src      string
	SrcSet   template.Srcset
	Sizes    string
	Loading  string
	Decoding string
	Alt      string
}

func NewRenderer(site *content.Site, images *cloudinary.Builder) (*Renderer, error) {
	r := &Renderer{
		site:   site,
		images: images,
		now:    time.Now,
	}

	tmpl, err := template.New("site").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

func (r *Renderer) Site() *content.Site {
	return r.site
}

// RenderPage renders the catalog page with the given slug.
func (r *Renderer) RenderPage(slug string) ([]byte, error) {
	page, err := r.site.Page(slug)
	if err != nil {
		return nil, err
	}
	return r.execute("page", pageData{Site: r.site, Page: page, Year: r.now().Year()})
}

func (r *Renderer) RenderNotFound() ([]byte, error) {
	page := &content.Page{
		Slug:        "not-found",
		Title:       "Page Not Found",
		Description: "The page you are looking for has moved or no longer exists.",
	}
	return r.execute("not_found", pageData{Site: r.site, Page: page, Year: r.now().Year()})
}

func (r *Renderer) execute(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", data.Page.Slug, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"cdn":        r.cdn,
		"cardImg":    r.cardImage,
		"featureImg": r.featureImage,
		"logoImg":    r.logoImage,
		"bgVars":     r.backgroundVars,
		"isCurrent":  isCurrent,
		"slugify":    slugify,
	}
}

func (r *Renderer) cdn(src string) string {
	return r.images.GetURL(src, cloudinary.Options{Width: ogImageWidth, Crop: cloudinary.CropFill})
}

func (r *Renderer) attrs(img content.Image, opts cloudinary.ResponsiveOptions, slots cloudinary.SlotSizes) imageAttrs {
	opts.Src = img.Src
	props := r.images.GetOptimizedImageProps(opts, slots)
	return imageAttrs{
		Src:      props.Src,
		SrcSet:   template.Srcset(props.SrcSet),
		Sizes:    props.Sizes,
		Loading:  props.Loading,
		Decoding: props.Decoding,
		Alt:      img.Alt,
	}
}

func (r *Renderer) cardImage(img content.Image) imageAttrs {
	return r.attrs(img, cloudinary.ResponsiveOptions{
		Options: cloudinary.Options{Crop: cloudinary.CropLimit},
		Sizes:   cloudinary.TierWidths{Mobile: cardMobile, Tablet: cardTablet, Desktop: cardDesktop},
	}, cloudinary.SlotSizes{Mobile: "100vw", Tablet: "50vw", Desktop: img.Sizes})
}

func (r *Renderer) featureImage(img content.Image) imageAttrs {
	return r.attrs(img, cloudinary.ResponsiveOptions{
		Options: cloudinary.Options{Crop: cloudinary.CropLimit},
		Sizes:   cloudinary.TierWidths{Desktop: featureDesktop},
	}, cloudinary.SlotSizes{Desktop: img.Sizes})
}

func (r *Renderer) logoImage(img content.Image) imageAttrs {
	a := r.attrs(img, cloudinary.ResponsiveOptions{
		Options: cloudinary.Options{Crop: cloudinary.CropFit},
		Sizes:   cloudinary.TierWidths{Mobile: logoWidth, Tablet: logoWidth, Desktop: logoWidth},
	}, cloudinary.SlotSizes{Mobile: img.Sizes, Tablet: img.Sizes, Desktop: img.Sizes})
	// The logo sits above the fold.
	a.Loading = "eager"
	return a
}

// backgroundVars exposes the tiered hero URLs as CSS custom properties that
// the stylesheet switches between at the shared breakpoints.
func (r *Renderer) backgroundVars(src string) template.CSS {
	urls := r.images.GetBackgroundImageURLs(cloudinary.ResponsiveOptions{
		Src:     src,
		Options: cloudinary.Options{Crop: cloudinary.CropFill, Gravity: "auto"},
	})
	return template.CSS("--bg-mobile: " + urls.Mobile +
		"; --bg-tablet: " + urls.Tablet +
		"; --bg-desktop: " + urls.Desktop)
}

func isCurrent(page *content.Page, link content.Link) bool {
	return page != nil && page.Path() == link.Href
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
