package markdown

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/*.gotmpl
var embeddedTemplates embed.FS

// DefaultTemplateName is the logical name of the built-in document template.
// Engines append their own extension (.tpl, .gotmpl).
const DefaultTemplateName = "configuration.md"

// TemplatesFS exposes the embedded template bundle rooted at the template
// directory, so "configuration.md.tpl" resolves directly.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
