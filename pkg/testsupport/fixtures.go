package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propdoc/pkg/metadata"
)

// MustParseMetadata parses a metadata fixture with the supplied parser,
// failing the test on error.
func MustParseMetadata(t *testing.T, parser metadata.Parser, path string) metadata.Metadata {
	t.Helper()

	md, err := ParseMetadataFromPath(parser, path)
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	return md
}

// ParseMetadataFromPath returns parsed Metadata without requiring testing.T so
// callers can wire fixtures in setup functions.
func ParseMetadataFromPath(parser metadata.Parser, path string) (metadata.Metadata, error) {
	if parser == nil {
		return metadata.Metadata{}, errors.New("testsupport: parser is required")
	}
	if path == "" {
		return metadata.Metadata{}, errors.New("testsupport: metadata path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("testsupport: read metadata: %w", err)
	}
	md, err := parser.Parse(context.Background(), data)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("testsupport: parse metadata: %w", err)
	}
	return md, nil
}

// WriteFile creates path with content under a test directory, creating parent
// directories as needed.
func WriteFile(t *testing.T, path string, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

// MustReadFile reads a file produced by the code under test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}
