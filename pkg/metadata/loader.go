package metadata

import (
	"context"
	"io/fs"
)

// Loader resolves a Source into its raw content or an explicit absent
// result. Implementations live under internal/metadata/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (LoadResult, error)
}

// LoadResult is the two-variant outcome of a load: the file content, or the
// fact that nothing exists at the location.
type LoadResult struct {
	location string
	content  []byte
	absent   bool
}

// Loaded wraps the content read from location.
func Loaded(location string, content []byte) LoadResult {
	return LoadResult{
		location: location,
		content:  append([]byte(nil), content...),
	}
}

// Absent reports that location does not reference an existing file.
func Absent(location string) LoadResult {
	return LoadResult{location: location, absent: true}
}

// IsAbsent reports whether the source did not exist.
func (r LoadResult) IsAbsent() bool {
	return r.absent
}

// Content returns a copy of the loaded bytes; nil when absent.
func (r LoadResult) Content() []byte {
	if r.absent {
		return nil
	}
	return append([]byte(nil), r.content...)
}

// Location returns the resolved location that was searched.
func (r LoadResult) Location() string {
	return r.location
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources. File sources always use the
	// operating system.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies a set of LoaderOption values.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
