// Package gotmpl renders document templates with text/template and the sprig
// function library. Every action that prints a value is piped through
// escapemarkup unless it already ends in escapemarkup or safe. Templates run
// with missingkey=error, so a reference to an absent field fails the render.
package gotmpl

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	texttemplate "text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"

	"github.com/goliatone/go-propdoc/pkg/render/template"
)

// EngineName identifies the Go template engine in configuration and
// registries.
const EngineName = "gotemplate"

// Extension is appended to logical template names.
const Extension = ".gotmpl"

const (
	escapeFunc = "escapemarkup"
	safeFunc   = "safe"
)

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

// Engine renders text/template templates. Parsed templates are cached per
// path.
type Engine struct {
	dir   string
	files fs.FS
	funcs texttemplate.FuncMap

	mu        sync.Mutex
	dirErr    error
	dirDone   bool
	templates map[string]*texttemplate.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		funcs:     defaultFuncs(),
		templates: make(map[string]*texttemplate.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.dir == "" && e.files == nil {
		return nil, errors.New("gotmpl: a template directory or fs.FS is required")
	}
	return e, nil
}

// RenderTemplate resolves name plus Extension and executes it against data.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	path := template.TemplateFileName(name, Extension)

	view, err := template.NormalizeData(data)
	if err != nil {
		return "", fmt.Errorf("gotmpl: convert data: %w", err)
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("gotmpl: execute template %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*texttemplate.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	if err := e.checkDir(); err != nil {
		return nil, err
	}

	content, err := e.readTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("gotmpl: load template %q: %w", path, err)
	}
	tmpl, err := texttemplate.New(path).
		Option("missingkey=error").
		Funcs(e.funcs).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("gotmpl: parse template %q: %w", path, err)
	}
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			escapeList(t.Tree.Root)
		}
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// checkDir must be called with e.mu held.
func (e *Engine) checkDir() error {
	if e.dir == "" || e.dirDone {
		return e.dirErr
	}
	e.dirDone = true
	info, err := os.Stat(e.dir)
	switch {
	case err != nil:
		e.dirErr = fmt.Errorf("gotmpl: template directory: %w", err)
	case !info.IsDir():
		e.dirErr = fmt.Errorf("gotmpl: template directory %q is not a directory", e.dir)
	}
	return e.dirErr
}

func (e *Engine) readTemplate(path string) ([]byte, error) {
	if e.dir != "" {
		content, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(path)))
		if err == nil || !errors.Is(err, fs.ErrNotExist) || e.files == nil {
			return content, err
		}
	}
	return fs.ReadFile(e.files, path)
}

func escapeList(list *parse.ListNode) {
	if list == nil {
		return
	}
	for _, node := range list.Nodes {
		switch n := node.(type) {
		case *parse.ActionNode:
			escapeAction(n)
		case *parse.IfNode:
			escapeList(n.List)
			escapeList(n.ElseList)
		case *parse.RangeNode:
			escapeList(n.List)
			escapeList(n.ElseList)
		case *parse.WithNode:
			escapeList(n.List)
			escapeList(n.ElseList)
		}
	}
}

// escapeAction appends escapemarkup to a printing pipeline.
func escapeAction(action *parse.ActionNode) {
	pipe := action.Pipe
	if pipe == nil || len(pipe.Decl) > 0 || len(pipe.Cmds) == 0 {
		return
	}
	last := pipe.Cmds[len(pipe.Cmds)-1]
	if len(last.Args) > 0 {
		if ident, ok := last.Args[0].(*parse.IdentifierNode); ok {
			if ident.Ident == escapeFunc || ident.Ident == safeFunc {
				return
			}
		}
	}
	pipe.Cmds = append(pipe.Cmds, &parse.CommandNode{
		NodeType: parse.NodeCommand,
		Pos:      action.Pos,
		Args:     []parse.Node{parse.NewIdentifier(escapeFunc).SetTree(nil).SetPos(action.Pos)},
	})
}

func defaultFuncs() texttemplate.FuncMap {
	funcs := texttemplate.FuncMap(sprig.TxtFuncMap())
	funcs["tablecell"] = func(v any) string {
		if v == nil {
			return ""
		}
		return template.TableCell(fmt.Sprint(v))
	}
	funcs[escapeFunc] = func(args ...any) string {
		if len(args) == 1 {
			switch v := args[0].(type) {
			case nil:
				return ""
			case string:
				return template.EscapeMarkup(v)
			}
		}
		return template.EscapeMarkup(fmt.Sprint(args...))
	}
	funcs[safeFunc] = func(v any) any { return v }
	return funcs
}
