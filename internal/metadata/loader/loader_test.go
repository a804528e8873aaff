package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-propdoc/internal/metadata/loader"
	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/metadata"
)

const sample = `{"properties":[{"name":"a","type":"String","sourceType":"A"}]}`

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spring-configuration-metadata.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(metadata.NewLoaderOptions())
	result, err := l.Load(context.Background(), metadata.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.IsAbsent() {
		t.Fatalf("expected file to be loaded")
	}
	if string(result.Content()) != sample {
		t.Fatalf("unexpected content %q", result.Content())
	}
	if result.Location() != path {
		t.Fatalf("unexpected location %q", result.Location())
	}
}

func TestLoader_MissingFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	l := loader.New(metadata.NewLoaderOptions())
	result, err := l.Load(context.Background(), metadata.SourceFromFile(path))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if !result.IsAbsent() {
		t.Fatalf("expected absent result")
	}
}

func TestLoader_DirectoryIsReadError(t *testing.T) {
	dir := t.TempDir()

	l := loader.New(metadata.NewLoaderOptions())
	_, err := l.Load(context.Background(), metadata.SourceFromFile(dir))
	if err == nil {
		t.Fatalf("expected error reading a directory")
	}
	if !errors.Is(err, perrors.ErrInputRead) {
		t.Fatalf("expected input read error, got %v", err)
	}
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"META-INF/spring-configuration-metadata.json": &fstest.MapFile{Data: []byte(sample)},
	}

	l := loader.New(metadata.NewLoaderOptions(metadata.WithFileSystem(fsys)))

	result, err := l.Load(context.Background(), metadata.SourceFromFS("META-INF/spring-configuration-metadata.json"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if string(result.Content()) != sample {
		t.Fatalf("unexpected content %q", result.Content())
	}

	missing, err := l.Load(context.Background(), metadata.SourceFromFS("META-INF/other.json"))
	if err != nil {
		t.Fatalf("load missing fs entry: %v", err)
	}
	if !missing.IsAbsent() {
		t.Fatalf("expected absent fs entry")
	}
}

func TestLoader_FSNotConfigured(t *testing.T) {
	l := loader.New(metadata.NewLoaderOptions())
	_, err := l.Load(context.Background(), metadata.SourceFromFS("meta.json"))
	if !errors.Is(err, perrors.ErrInputRead) {
		t.Fatalf("expected input read error, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(metadata.NewLoaderOptions())
	_, err := l.Load(ctx, metadata.SourceFromFile("meta.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoader_NilSource(t *testing.T) {
	l := loader.New(metadata.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
