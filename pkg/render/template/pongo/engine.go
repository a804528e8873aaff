// Package pongo renders document templates with pongo2. Interpolated values
// are escaped with template.EscapeMarkup, and every variable path a template
// references must resolve against the render data.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-propdoc/pkg/render/template"
)

// EngineName identifies the pongo2 engine in configuration and registries.
const EngineName = "pongo2"

// Extension is appended to logical template names.
const Extension = ".tpl"

// Option configures the engine before construction.
type Option func(*Engine)

// WithDir loads templates from a directory on disk. Directory templates take
// precedence over WithFS templates. The directory is checked when the first
// template is loaded.
func WithDir(dir string) Option {
	return func(e *Engine) {
		e.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine renders templates from a pongo2 template set.
type Engine struct {
	dir   string
	files fs.FS

	mu       sync.Mutex
	set      *pongo2.TemplateSet
	loaders  []pongo2.TemplateLoader
	compiled map[string]compiledTemplate
}

type compiledTemplate struct {
	tpl    *pongo2.Template
	source string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{compiled: make(map[string]compiledTemplate)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.dir == "" && e.files == nil {
		return nil, errors.New("pongo: a template directory or fs.FS is required")
	}
	registerFilters()
	return e, nil
}

// RenderTemplate resolves name plus Extension and executes it against data.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	path := template.TemplateFileName(name, Extension)

	view, err := template.NormalizeData(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data: %w", err)
	}

	compiled, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	if err := checkReferences(compiled.source, view); err != nil {
		return "", fmt.Errorf("pongo: template %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := compiled.tpl.ExecuteWriter(pongo2.Context(view), &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (compiledTemplate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if compiled, ok := e.compiled[path]; ok {
		return compiled, nil
	}
	if e.set == nil {
		loaders, err := e.newLoaders()
		if err != nil {
			return compiledTemplate{}, err
		}
		e.loaders = loaders
		e.set = pongo2.NewSet("propdoc", loaders...)
	}

	source, err := e.readSource(path)
	if err != nil {
		return compiledTemplate{}, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return compiledTemplate{}, fmt.Errorf("pongo: compile template %q: %w", path, err)
	}

	compiled := compiledTemplate{tpl: tpl, source: source}
	e.compiled[path] = compiled
	return compiled, nil
}

func (e *Engine) newLoaders() ([]pongo2.TemplateLoader, error) {
	var loaders []pongo2.TemplateLoader
	if e.dir != "" {
		info, err := os.Stat(e.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pongo: template directory %q is not a directory", e.dir)
		}
		local, err := pongo2.NewLocalFileSystemLoader(e.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template directory: %w", err)
		}
		loaders = append(loaders, local)
	}
	if e.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(e.files))
	}
	return loaders, nil
}

// readSource returns the text the template set compiles for path: the first
// loader that can open it wins.
func (e *Engine) readSource(path string) (string, error) {
	for _, loader := range e.loaders {
		r, err := loader.Get(loader.Abs("", path))
		if err != nil {
			continue
		}
		content, err := io.ReadAll(r)
		if closer, ok := r.(io.Closer); ok {
			closer.Close()
		}
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return "", fs.ErrNotExist
}
