// Package output persists rendered documents. Writes go through a temporary
// file in the target directory and an atomic rename, so readers never observe
// a partially written document.
package output

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	perrors "github.com/goliatone/go-propdoc/pkg/errors"
)

// DefaultFileMode applies to files that did not exist before the write.
const DefaultFileMode fs.FileMode = 0o644

// DiffContext is the number of unchanged lines shown around each change in a
// check-mode diff.
const DiffContext = 3

// Writer writes document text to a single file path.
type Writer struct{}

// WriteResult describes a completed write.
type WriteResult struct {
	Path    string
	Bytes   int
	Changed bool
}

func NewWriter() *Writer {
	return &Writer{}
}

// Write replaces the file at path with text, creating it when absent. The
// parent directory must already exist. An existing file keeps its mode. Any
// failure is an OutputWrite error and leaves the previous file untouched.
func (w *Writer) Write(ctx context.Context, path, text string) (WriteResult, error) {
	if path == "" {
		return WriteResult{}, perrors.New(perrors.KindOutputWrite, path, "output writer: output path is required")
	}
	if err := ctx.Err(); err != nil {
		return WriteResult{}, perrors.Wrap(err, perrors.KindOutputWrite, path, "output writer: write cancelled")
	}

	target, err := resolveTarget(path)
	if err != nil {
		return WriteResult{}, perrors.Wrap(err, perrors.KindOutputWrite, path, "output writer: resolve output path")
	}

	mode := DefaultFileMode
	changed := true
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return WriteResult{}, perrors.New(perrors.KindOutputWrite, path, "output writer: output path is a directory")
		}
		mode = info.Mode().Perm()
		if existing, readErr := os.ReadFile(target); readErr == nil {
			changed = !bytes.Equal(existing, []byte(text))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return WriteResult{}, perrors.Wrap(err, perrors.KindOutputWrite, path, "output writer: stat output file")
	}

	if err := writeAtomic(target, text, mode); err != nil {
		return WriteResult{}, perrors.Wrap(err, perrors.KindOutputWrite, path, "output writer: write output file")
	}

	return WriteResult{Path: path, Bytes: len(text), Changed: changed}, nil
}

// Check compares text with the file at path without writing. A differing or
// missing file yields an OutputStale error whose detail is a unified diff from
// the current file to the expected text.
func (w *Writer) Check(path, text string) error {
	if path == "" {
		return perrors.New(perrors.KindOutputWrite, path, "output writer: output path is required")
	}

	current, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		current = nil
	default:
		return perrors.Wrap(err, perrors.KindOutputWrite, path, "output writer: read existing output")
	}

	if bytes.Equal(current, []byte(text)) {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(text),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  DiffContext,
	})
	if err != nil {
		return perrors.Wrap(err, perrors.KindOutputStale, path, "output writer: compute diff")
	}

	return &perrors.Error{
		Kind:    perrors.KindOutputStale,
		Path:    path,
		Message: "output writer: output is out of date",
		Detail:  diff,
	}
}

func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}
	return filepath.EvalSymlinks(path)
}

func writeAtomic(target, text string, mode fs.FileMode) error {
	dir := filepath.Dir(target)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmpFile)
	if _, err := buf.WriteString(text); err != nil {
		return fmt.Errorf("write content: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush content: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("rename to destination: %w", err)
	}

	success = true
	return nil
}
