package propdoc

import (
	"io/fs"

	"github.com/goliatone/go-propdoc/pkg/renderers/markdown"
)

// EmbeddedTemplates exposes the built-in document templates so callers can
// copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return markdown.TemplatesFS()
}
