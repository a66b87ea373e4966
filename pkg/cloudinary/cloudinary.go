// Package cloudinary builds Cloudinary delivery URLs and responsive image
// attributes. Every function is pure: inputs that do not look like Cloudinary
// assets are passed through unchanged and nothing here returns an error.
package cloudinary

import (
	"regexp"
	"strings"
)

const (
	// DefaultCloudName is the studio's Cloudinary account.
	DefaultCloudName = "dxqzby6fc"

	domainMarker = "cloudinary.com"
)

var (
	publicIDPattern      = regexp.MustCompile(`/upload/(?:v\d+/)?(.+?)(?:\.[^./]+)?$`)
	versionPrefixPattern = regexp.MustCompile(`^v\d+/`)
)

// Builder composes URLs against a single cloud name.
type Builder struct {
	cloudName string
	baseURL   string
}

// New returns a Builder for cloudName, falling back to DefaultCloudName.
func New(cloudName string) *Builder {
	if cloudName == "" {
		cloudName = DefaultCloudName
	}
	return &Builder{
		cloudName: cloudName,
		baseURL:   "https://res.cloudinary.com/" + cloudName + "/image/upload",
	}
}

var defaultBuilder = New(DefaultCloudName)

func (b *Builder) CloudName() string {
	return b.cloudName
}

// ExtractPublicID returns the asset identifier embedded in a Cloudinary URL.
// Strings without the Cloudinary domain, or that do not match the upload path
// shape, are returned as given.
func ExtractPublicID(src string) string {
	if !strings.Contains(src, domainMarker) {
		return src
	}

	match := publicIDPattern.FindStringSubmatch(src)
	if match == nil {
		return src
	}
	return match[1]
}

// IsCloudinaryAsset reports whether GetURL would rewrite src.
func IsCloudinaryAsset(src string) bool {
	return strings.Contains(src, domainMarker) || versionPrefixPattern.MatchString(src)
}

// GetURL composes a transformed delivery URL for src.
func (b *Builder) GetURL(src string, opts Options) string {
	if !IsCloudinaryAsset(src) {
		return src
	}

	return b.baseURL + "/" + BuildTransformations(opts) + "/" + ExtractPublicID(src)
}

// GetURL composes a transformed delivery URL using DefaultCloudName.
func GetURL(src string, opts Options) string {
	return defaultBuilder.GetURL(src, opts)
}
