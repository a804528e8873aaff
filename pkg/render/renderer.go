package render

import (
	"context"

	"github.com/goliatone/go-propdoc/pkg/metadata"
)

// Renderer turns sorted metadata into document text. Output is the raw engine
// result; callers run UnescapeHTML before writing it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, md metadata.Metadata, options RenderOptions) (string, error)
}
