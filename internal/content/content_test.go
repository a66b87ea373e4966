package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Harmony Dance & Music Studio", site.Name)

	for _, slug := range []string{"home", "about", "programs", "schedule", "tuition", "dress-code", "contact"} {
		page, err := site.Page(slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, page.Title)
		assert.NotEmpty(t, page.Description, slug)
		require.NotNil(t, page.Hero, slug)
		assert.NotEmpty(t, page.Hero.Image.Alt, slug)
	}

	home, err := site.Page("home")
	require.NoError(t, err)
	assert.Equal(t, "/", home.Path())
	require.NotNil(t, home.WhyUs)
	assert.Len(t, home.WhyUs.Cards, 4)
	assert.Len(t, home.Testimonials, 3)
}

func TestPageNotFound(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	_, err = site.Page("recital-tickets")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPageNotFound))
}

func TestImagesHaveAltText(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	images := site.Images()
	require.NotEmpty(t, images)
	assert.Equal(t, site.Logo, images[0])
	for _, img := range images {
		assert.NotEmpty(t, img.Alt, img.Src)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "pages:\n  - slug: home\n    title: Home\n",
			wantErr: "site name is required",
		},
		{
			name:    "no pages",
			yaml:    "name: Studio\n",
			wantErr: "no pages",
		},
		{
			name:    "missing slug",
			yaml:    "name: Studio\npages:\n  - title: Home\n",
			wantErr: "has no slug",
		},
		{
			name:    "nested slug",
			yaml:    "name: Studio\npages:\n  - slug: a/b\n    title: A\n",
			wantErr: "lowercase letters, digits and hyphens",
		},
		{
			name:    "route parameter slug",
			yaml:    "name: Studio\npages:\n  - slug: \":class\"\n    title: A\n",
			wantErr: "lowercase letters, digits and hyphens",
		},
		{
			name:    "catch-all slug",
			yaml:    "name: Studio\npages:\n  - slug: \"*rest\"\n    title: A\n",
			wantErr: "lowercase letters, digits and hyphens",
		},
		{
			name:    "phone nav link",
			yaml:    "name: Studio\nnav:\n  - label: Call\n    href: \"tel:+15551234567\"\npages:\n  - slug: home\n    title: Home\n",
			wantErr: "unknown page",
		},
		{
			name:    "phone social link",
			yaml:    "name: Studio\nfooter:\n  social:\n    - label: Call\n      href: \"tel:+15551234567\"\npages:\n  - slug: home\n    title: Home\n",
			wantErr: "social link \"Call\"",
		},
		{
			name:    "image without alt",
			yaml:    "name: Studio\npages:\n  - slug: home\n    title: Home\n    hero:\n      title: Dance\n      image:\n        src: v1/hero.jpg\n",
			wantErr: "has no alt text",
		},
		{
			name:    "duplicate slug",
			yaml:    "name: Studio\npages:\n  - slug: about\n    title: A\n  - slug: about\n    title: B\n",
			wantErr: "duplicate page",
		},
		{
			name:    "dangling nav",
			yaml:    "name: Studio\nnav:\n  - label: Blog\n    href: /blog\npages:\n  - slug: home\n    title: Home\n",
			wantErr: "unknown page",
		},
		{
			name:    "malformed yaml",
			yaml:    "name: [",
			wantErr: "failed to decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadExternalNavLinks(t *testing.T) {
	yaml := `name: Studio
nav:
  - label: Home
    href: /
  - label: Shop
    href: https://shop.example
pages:
  - slug: home
    title: Home
`
	site, err := Load(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.True(t, site.Nav[1].IsExternal())
	assert.False(t, site.Nav[0].IsExternal())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Pop-up Studio\npages:\n  - slug: home\n    title: Welcome\n"), 0o644))

	site, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Pop-up Studio", site.Name)

	embedded, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "Harmony Dance & Music Studio", embedded.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
