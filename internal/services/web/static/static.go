// Package static embeds the dashboard stylesheet and browser scripts.
package static

import "embed"

// FS holds app.css, app.js (observatory client) and htmx.js.
//
//go:embed *.css *.js
var FS embed.FS
