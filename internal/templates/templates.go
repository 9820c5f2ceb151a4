package templates

import "embed"

// Scripts holds the handlebars templates for commands executed on the
// target host over SSH.
//
//go:embed scripts
var Scripts embed.FS
