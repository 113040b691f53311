package web

import "embed"

// Templates holds the html views rendered by the server.
//
//go:embed templates/*.html
var Templates embed.FS

// Assets holds the stylesheet and script served under /assets.
//
//go:embed assets
var Assets embed.FS
