package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/metadata"
)

// Loader implements metadata.Loader for file and fs.FS sources. Construction
// helpers live in the root propdoc package.
type Loader struct {
	fs fs.FS
}

var _ metadata.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options metadata.LoaderOptions) metadata.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load resolves src. A location that does not exist yields an absent result;
// any other failure is reported as an input read error.
func (l *Loader) Load(ctx context.Context, src metadata.Source) (metadata.LoadResult, error) {
	if src == nil {
		return metadata.LoadResult{}, errors.New("metadata loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return metadata.LoadResult{}, err
	}

	var (
		data    []byte
		present bool
		err     error
	)

	switch src.Kind() {
	case metadata.SourceKindFile:
		data, present, err = loadFile(src.Location())
	case metadata.SourceKindFS:
		data, present, err = loadFromFS(l.fs, src.Location())
	default:
		return metadata.LoadResult{}, fmt.Errorf("metadata loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return metadata.LoadResult{}, perrors.Wrap(err, perrors.KindInputRead, src.Location(), "metadata loader: read metadata file")
	}
	if !present {
		return metadata.Absent(src.Location()), nil
	}
	return metadata.Loaded(src.Location(), data), nil
}
