package web

import "embed"

// Templates holds the console and landing page templates.
//
//go:embed templates/*.html
var Templates embed.FS
