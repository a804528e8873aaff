// Package markdown renders configuration metadata into a Markdown document
// through a pluggable template engine.
package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/metadata"
	"github.com/goliatone/go-propdoc/pkg/render"
	rendertemplate "github.com/goliatone/go-propdoc/pkg/render/template"
	"github.com/goliatone/go-propdoc/pkg/render/template/gotmpl"
	"github.com/goliatone/go-propdoc/pkg/render/template/pongo"
)

// MetadataKey is the single name the document template sees the metadata
// under.
const MetadataKey = "metadata"

type Option func(*config)

type config struct {
	engine           string
	templateFS       fs.FS
	templateDir      string
	templateName     string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithEngine selects the template engine by name (pongo2 or gotemplate).
func WithEngine(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.engine = trimmed
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates missing
// from the directory fall back to the bundle. A missing directory is reported
// by Render, not New.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateName overrides the logical template name.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.templateName = trimmed
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. The
// engine, bundle and directory options are ignored when one is supplied.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer binds sorted metadata to a document template.
type Renderer struct {
	name         string
	templateName string
	templates    rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the markdown renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		engine:       pongo.EngineName,
		templateFS:   TemplatesFS(),
		templateName: DefaultTemplateName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := newEngine(cfg)
		if err != nil {
			return nil, fmt.Errorf("markdown renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		name:         cfg.engine,
		templateName: cfg.templateName,
		templates:    renderer,
	}, nil
}

func newEngine(cfg config) (rendertemplate.TemplateRenderer, error) {
	switch cfg.engine {
	case pongo.EngineName:
		return pongo.New(pongo.WithDir(cfg.templateDir), pongo.WithFS(cfg.templateFS))
	case gotmpl.EngineName:
		return gotmpl.New(gotmpl.WithDir(cfg.templateDir), gotmpl.WithFS(cfg.templateFS))
	default:
		return nil, fmt.Errorf("unknown template engine %q", cfg.engine)
	}
}

// Name reports the engine name, which is also the registry key.
func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render executes the document template with md bound to "metadata". The
// result still has &, < and > escaped; run render.UnescapeHTML before writing.
func (r *Renderer) Render(ctx context.Context, md metadata.Metadata, options render.RenderOptions) (string, error) {
	templateName := r.templateName
	if name := strings.TrimSpace(options.TemplateName); name != "" {
		templateName = name
	}
	if r.templates == nil {
		return "", perrors.New(perrors.KindTemplate, templateName, "markdown renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", perrors.Wrap(err, perrors.KindTemplate, templateName, "markdown renderer: render cancelled")
	}

	data := make(map[string]any, len(options.Globals)+1)
	for key, value := range options.Globals {
		data[key] = value
	}
	data[MetadataKey] = md

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return "", perrors.Wrap(err, perrors.KindTemplate, templateName, "markdown renderer: render template")
	}
	return result, nil
}

// NewRegistry returns a registry holding a markdown renderer for every
// built-in engine, each configured with options.
func NewRegistry(options ...Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	for _, engine := range Engines() {
		opts := append(append([]Option{}, options...), WithEngine(engine))
		renderer, err := New(opts...)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Engines lists the built-in template engine names.
func Engines() []string {
	return []string{pongo.EngineName, gotmpl.EngineName}
}
