// Package content holds the studio's page catalog: navigation, footer and
// the sections each page is composed from.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrPageNotFound = errors.New("page not found")

// Slugs become literal route segments, so router wildcards (":" and "*") and
// other punctuation are not allowed.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Site struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Logo    Image  `yaml:"logo"`
	Nav     []Link `yaml:"nav"`
	Footer  Footer `yaml:"footer"`
	Pages   []Page `yaml:"pages"`
}

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// IsExternal reports whether the link leaves the site. Only schemes the
// page templates render as-is count.
func (l Link) IsExternal() bool {
	return strings.HasPrefix(l.Href, "http://") ||
		strings.HasPrefix(l.Href, "https://") ||
		strings.HasPrefix(l.Href, "mailto:")
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
	// Sizes is the rendered slot width, e.g. "50vw". Empty means full width.
	Sizes string `yaml:"sizes"`
}

type Footer struct {
	Address string   `yaml:"address"`
	Phone   string   `yaml:"phone"`
	Email   string   `yaml:"email"`
	Hours   []string `yaml:"hours"`
	Social  []Link   `yaml:"social"`
	Notice  string   `yaml:"notice"`
}

type Page struct {
	Slug         string        `yaml:"slug"`
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
	Hero         *Hero         `yaml:"hero"`
	Intro        []string      `yaml:"intro"`
	Feature      *Feature      `yaml:"feature"`
	WhyUs        *WhyUs        `yaml:"why_us"`
	Programs     []Program     `yaml:"programs"`
	Tuition      *Tuition      `yaml:"tuition"`
	DressCode    []DressCode   `yaml:"dress_code"`
	Schedule     []ScheduleDay `yaml:"schedule"`
	Testimonials []Testimonial `yaml:"testimonials"`
	CTA          *CTA          `yaml:"cta"`
}

// Path is the URL the page is served at.
func (p Page) Path() string {
	if p.Slug == "home" {
		return "/"
	}
	return "/" + p.Slug
}

type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Image    Image  `yaml:"image"`
	Action   *Link  `yaml:"action"`
}

// Feature is an image beside a block of copy.
type Feature struct {
	Heading string   `yaml:"heading"`
	Body    []string `yaml:"body"`
	Image   Image    `yaml:"image"`
}

type WhyUs struct {
	Heading string      `yaml:"heading"`
	Cards   []ValueCard `yaml:"cards"`
}

type ValueCard struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Program struct {
	Name        string `yaml:"name"`
	Ages        string `yaml:"ages"`
	Description string `yaml:"description"`
	Image       Image  `yaml:"image"`
}

type Tuition struct {
	Heading string        `yaml:"heading"`
	Tiers   []TuitionTier `yaml:"tiers"`
	Notes   []string      `yaml:"notes"`
}

type TuitionTier struct {
	Name    string `yaml:"name"`
	Weekly  string `yaml:"weekly"`
	Monthly string `yaml:"monthly"`
}

type DressCode struct {
	Class  string   `yaml:"class"`
	Attire []string `yaml:"attire"`
	Hair   string   `yaml:"hair"`
}

type ScheduleDay struct {
	Day     string          `yaml:"day"`
	Classes []ScheduleClass `yaml:"classes"`
}

type ScheduleClass struct {
	Time string `yaml:"time"`
	Name string `yaml:"name"`
	Room string `yaml:"room"`
}

type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
}

type CTA struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
	Action  Link   `yaml:"action"`
}

// Load parses and validates a catalog.
func Load(r io.Reader) (*Site, error) {
	var site Site
	if err := yaml.NewDecoder(r).Decode(&site); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// LoadFile reads the catalog at path, or the embedded one when path is empty.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Default returns the catalog compiled into the binary.
func Default() (*Site, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

func (s *Site) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("invalid catalog: site name is required")
	}
	if len(s.Pages) == 0 {
		return fmt.Errorf("invalid catalog: no pages")
	}

	paths := make(map[string]bool, len(s.Pages))
	for i, p := range s.Pages {
		if p.Slug == "" {
			return fmt.Errorf("invalid catalog: page %d has no slug", i)
		}
		if !slugPattern.MatchString(p.Slug) {
			return fmt.Errorf("invalid catalog: slug %q must be lowercase letters, digits and hyphens", p.Slug)
		}
		if p.Title == "" {
			return fmt.Errorf("invalid catalog: page %q has no title", p.Slug)
		}
		if paths[p.Path()] {
			return fmt.Errorf("invalid catalog: duplicate page %q", p.Slug)
		}
		paths[p.Path()] = true
	}

	for _, link := range s.Nav {
		if link.IsExternal() {
			continue
		}
		if !paths[link.Href] {
			return fmt.Errorf("invalid catalog: nav link %q targets unknown page %q", link.Label, link.Href)
		}
	}

	for _, link := range s.Footer.Social {
		if !link.IsExternal() {
			return fmt.Errorf("invalid catalog: social link %q must be an http(s) or mailto URL", link.Label)
		}
	}

	for _, img := range s.Images() {
		if img.Alt == "" {
			return fmt.Errorf("invalid catalog: image %q has no alt text", img.Src)
		}
	}

	return nil
}

// Page looks a page up by slug.
func (s *Site) Page(slug string) (*Page, error) {
	for i := range s.Pages {
		if s.Pages[i].Slug == slug {
			return &s.Pages[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
}

// Images lists every image referenced by the catalog, logo first.
func (s *Site) Images() []Image {
	var images []Image
	if s.Logo.Src != "" {
		images = append(images, s.Logo)
	}

	for _, p := range s.Pages {
		if p.Hero != nil && p.Hero.Image.Src != "" {
			images = append(images, p.Hero.Image)
		}
		if p.Feature != nil && p.Feature.Image.Src != "" {
			images = append(images, p.Feature.Image)
		}
		for _, prog := range p.Programs {
			if prog.Image.Src != "" {
				images = append(images, prog.Image)
			}
		}
	}
	return images
}
