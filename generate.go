// Package propdoc turns configuration-property metadata into a Markdown
// reference document. The subpackages hold the pipeline stages; this package
// offers one-call entry points.
package propdoc

import (
	"context"

	"github.com/goliatone/go-propdoc/pkg/config"
	"github.com/goliatone/go-propdoc/pkg/orchestrator"
	"github.com/goliatone/go-propdoc/pkg/renderers/markdown"
	"github.com/goliatone/go-propdoc/pkg/sanitize"
)

// Result aliases orchestrator.Result for callers of Generate.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Options translates cfg into orchestrator options: the template directory
// and, when enabled, the description sanitizer.
func Options(cfg config.Config) []orchestrator.Option {
	var options []orchestrator.Option
	if cfg.TemplateDir != "" {
		options = append(options, orchestrator.WithRendererOptions(markdown.WithTemplatesDir(cfg.TemplateDir)))
	}
	if cfg.SanitizeDescriptions {
		options = append(options, orchestrator.WithDecorators(sanitize.New()))
	}
	return options
}

// NewRequest translates cfg into a generate request.
func NewRequest(cfg config.Config) orchestrator.Request {
	return orchestrator.Request{
		MetadataFile:  cfg.JSONFileName,
		OutputFile:    cfg.OutputFileName,
		FailIfMissing: cfg.FailIfNoMetadataFileFound,
		Renderer:      cfg.Engine,
		TemplateName:  cfg.Template,
	}
}

// Generate validates cfg and runs the full pipeline once, writing the
// document to cfg.OutputFileName.
func Generate(ctx context.Context, cfg config.Config, options ...orchestrator.Option) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	opts := append(Options(cfg), options...)
	return orchestrator.New(opts...).Generate(ctx, NewRequest(cfg))
}
