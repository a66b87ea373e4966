package web

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

// StaticFS holds the stylesheet and scripts served under /static.
//
//go:embed static
var StaticFS embed.FS
