package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-propdoc/internal/ctxlog"
	internalLoader "github.com/goliatone/go-propdoc/internal/metadata/loader"
	internalParser "github.com/goliatone/go-propdoc/internal/metadata/parser"
	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/metadata"
	"github.com/goliatone/go-propdoc/pkg/output"
	"github.com/goliatone/go-propdoc/pkg/render"
	"github.com/goliatone/go-propdoc/pkg/render/template/pongo"
	"github.com/goliatone/go-propdoc/pkg/renderers/markdown"
)

const defaultRendererName = pongo.EngineName

// Writer persists or verifies rendered documents.
type Writer interface {
	Write(ctx context.Context, path, text string) (output.WriteResult, error)
	Check(path, text string) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom metadata loader.
func WithLoader(loader metadata.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom metadata parser.
func WithParser(parser metadata.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRendererOptions configures the markdown renderers of the default
// registry. Ignored when WithRegistry is used.
func WithRendererOptions(options ...markdown.Option) Option {
	return func(o *Orchestrator) {
		o.rendererOptions = append(o.rendererOptions, options...)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithDecorators registers decorators that run on parsed metadata before it
// is sorted, in registration order.
func WithDecorators(decorators ...metadata.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWriter injects the document writer.
func WithWriter(writer Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// WithLogger sets the logger. Without one the logger carried by the request
// context is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator runs the documentation pipeline. Stages run strictly in
// sequence, each at most once per Generate call, and the first failure ends
// the run.
type Orchestrator struct {
	loader          metadata.Loader
	parser          metadata.Parser
	registry        *render.Registry
	rendererOptions []markdown.Option
	defaultRenderer string
	decorators      []metadata.Decorator
	writer          Writer
	logger          *slog.Logger
	rendererErr     error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single documentation run.
type Request struct {
	// MetadataFile is the path of the metadata JSON file. Ignored when Source
	// is set.
	MetadataFile string

	// Source overrides MetadataFile, for example to read from an fs.FS.
	Source metadata.Source

	// OutputFile is the path of the generated document.
	OutputFile string

	// FailIfMissing turns an absent metadata file into a MissingInput error.
	// When false the run is skipped and nothing is written.
	FailIfMissing bool

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// TemplateName overrides the renderer's logical template name.
	TemplateName string

	// Globals are extra template values available next to "metadata".
	Globals map[string]any

	// Check compares the document with OutputFile instead of writing it.
	Check bool

	// DryRun renders the document into Result.Document without writing.
	DryRun bool
}

// Status summarises how a run ended.
type Status string

const (
	StatusWritten  Status = "written"
	StatusSkipped  Status = "skipped"
	StatusUpToDate Status = "up-to-date"
	StatusStale    Status = "stale"
	StatusRendered Status = "rendered"
)

// Result reports the outcome of Generate.
type Result struct {
	Status     Status
	Source     string
	OutputFile string
	Properties int
	// Changed reports whether the written document differs from the previous
	// file content.
	Changed bool
	// Document holds the final text for dry runs.
	Document string
}

// Generate loads, parses, sorts and renders the metadata, then writes the
// document (or checks it, or returns it for dry runs).
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	o.ready()

	src := req.Source
	if src == nil {
		if strings.TrimSpace(req.MetadataFile) == "" {
			return Result{}, errors.New("orchestrator: metadata file is required")
		}
		src = metadata.SourceFromFile(req.MetadataFile)
	}
	if !req.DryRun && strings.TrimSpace(req.OutputFile) == "" {
		return Result{}, errors.New("orchestrator: output file is required")
	}

	logger := o.loggerFor(ctx)
	result := Result{Source: src.Location(), OutputFile: req.OutputFile}

	logger.Debug("searching for metadata file", slog.String("path", src.Location()))
	loaded, err := o.loader.Load(ctx, src)
	if err != nil {
		return result, fmt.Errorf("orchestrator: load metadata: %w", err)
	}
	if loaded.IsAbsent() {
		if req.FailIfMissing {
			return result, perrors.New(perrors.KindMissingInput, loaded.Location(), "orchestrator: metadata file not found")
		}
		logger.Info("metadata file not found, skipping documentation", slog.String("path", loaded.Location()))
		result.Status = StatusSkipped
		return result, nil
	}
	logger.Debug("metadata file found", slog.String("path", loaded.Location()), slog.Int("bytes", len(loaded.Content())))

	md, err := o.parser.Parse(ctx, loaded.Content())
	if err != nil {
		return result, fmt.Errorf("orchestrator: parse metadata: %w", err)
	}
	result.Properties = md.Len()
	logger.Debug("metadata parsed", slog.Int("properties", md.Len()))

	document, err := o.document(ctx, logger, md, req.Renderer, render.RenderOptions{
		TemplateName: req.TemplateName,
		Globals:      req.Globals,
	})
	if err != nil {
		return result, err
	}

	switch {
	case req.DryRun:
		result.Status = StatusRendered
		result.Document = document
		return result, nil
	case req.Check:
		if err := o.writer.Check(req.OutputFile, document); err != nil {
			if errors.Is(err, perrors.ErrOutputStale) {
				result.Status = StatusStale
			}
			return result, fmt.Errorf("orchestrator: check output: %w", err)
		}
		logger.Info("documentation is up to date", slog.String("path", req.OutputFile))
		result.Status = StatusUpToDate
		return result, nil
	}

	written, err := o.writer.Write(ctx, req.OutputFile, document)
	if err != nil {
		return result, fmt.Errorf("orchestrator: write output: %w", err)
	}
	result.Status = StatusWritten
	result.Changed = written.Changed
	logger.Info("documentation written",
		slog.String("path", req.OutputFile),
		slog.Int("properties", result.Properties),
		slog.Bool("changed", written.Changed),
	)
	return result, nil
}

// Render runs the decorate → sort → render → post-process stages on already
// parsed metadata and returns the final document text.
func (o *Orchestrator) Render(ctx context.Context, md metadata.Metadata, rendererName string, options render.RenderOptions) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	o.ready()
	return o.document(ctx, o.loggerFor(ctx), md, rendererName, options)
}

func (o *Orchestrator) document(ctx context.Context, logger *slog.Logger, md metadata.Metadata, rendererName string, options render.RenderOptions) (string, error) {
	decorated, err := o.applyDecorators(ctx, md)
	if err != nil {
		return "", err
	}
	sorted := metadata.Sort(decorated)
	logger.Debug("metadata sorted", slog.Any("names", sorted.Names()))

	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return "", err
	}

	raw, err := renderer.Render(ctx, sorted, options)
	if err != nil {
		return "", fmt.Errorf("orchestrator: render document: %w", err)
	}
	document := render.UnescapeHTML(raw)
	logger.Debug("document rendered",
		slog.String("renderer", renderer.Name()),
		slog.Int("bytes", len(document)),
	)
	logger.Debug("document content", slog.String("content", document))
	return document, nil
}

func (o *Orchestrator) ready() {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
}

func (o *Orchestrator) loggerFor(ctx context.Context) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return ctxlog.FromContext(ctx)
}

// rendererFor reports a failed default registry as a template error.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.rendererErr != nil {
		return nil, perrors.Wrap(o.rendererErr, perrors.KindTemplate, "", "orchestrator: default renderers")
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Resolve(target)
	if err != nil && name == "" {
		renderer, err = o.registry.Resolve("")
	}
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(ctx context.Context, md metadata.Metadata) (metadata.Metadata, error) {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		decorated, err := decorator.Decorate(ctx, md)
		if err != nil {
			return metadata.Metadata{}, fmt.Errorf("orchestrator: decorate metadata: %w", err)
		}
		md = decorated
	}
	return md, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(metadata.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(metadata.NewParserOptions())
	}
	if o.registry == nil {
		registry, err := markdown.NewRegistry(o.rendererOptions...)
		if err != nil {
			o.rendererErr = err
		} else {
			o.registry = registry
		}
	}
	if o.writer == nil {
		o.writer = output.NewWriter()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
