package pongo_test

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-propdoc/pkg/render/template/pongo"
	"github.com/goliatone/go-propdoc/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada <admin> & co"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if got != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_EscapesOnlyMarkup(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("hello.tpl", map[string]any{"name": `"Ada" it's +01:00 <b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hello \"Ada\" it's +01:00 &lt;b&gt;!\n"; got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_TableCellFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("cell", map[string]any{"cell": " a|b\nc "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "| a\\|b&lt;br&gt;c |\n"; got != want {
		t.Fatalf("unexpected cell\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_LoopOverProperties(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("properties", propertiesData())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "- server.port (8080)\n- app.name\n"; got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_MissingKeys(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]any
		wantErr  string
	}{
		{
			name:     "unknown field on a top level map",
			template: "missing",
			data:     propertiesData(),
			wantErr:  `"metadata.nope"`,
		},
		{
			name:     "unknown field on a loop variable",
			template: "loop-missing",
			data:     propertiesData(),
			wantErr:  `"p.nope"`,
		},
		{
			name:     "unknown root variable",
			template: "hello",
			data:     map[string]any{"other": "x"},
			wantErr:  `"name"`,
		},
	}

	engine := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.RenderTemplate(tt.template, tt.data)
			if err == nil {
				t.Fatalf("expected error, rendered %q", got)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error to mention %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
	if _, err := engine.RenderTemplate("broken", nil); err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, err := engine.RenderTemplate("hello", func() {}); err == nil {
		t.Fatalf("expected error for data that cannot be converted")
	}
}

func TestEngine_DirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "hello.tpl"), "Custom {{ name }}")

	engine, err := pongo.New(pongo.WithDir(dir), pongo.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Custom Ada" {
		t.Fatalf("expected directory template, got %q", got)
	}

	fallback, err := engine.RenderTemplate("cell", map[string]any{"cell": "x"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if fallback != "| x |\n" {
		t.Fatalf("expected embedded fallback, got %q", fallback)
	}
}

func TestEngine_MissingDirFailsOnRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	engine, err := pongo.New(pongo.WithDir(dir))
	if err != nil {
		t.Fatalf("new engine should not touch the directory: %v", err)
	}
	if _, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}); err == nil {
		t.Fatalf("expected error for missing template directory")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func propertiesData() map[string]any {
	return map[string]any{
		"metadata": map[string]any{
			"properties": []any{
				map[string]any{"name": "server.port", "defaultValue": "8080"},
				map[string]any{"name": "app.name", "defaultValue": ""},
			},
		},
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(pongo.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func templatesFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return sub
}
