package propdoc

import (
	internalLoader "github.com/goliatone/go-propdoc/internal/metadata/loader"
	internalParser "github.com/goliatone/go-propdoc/internal/metadata/parser"
	"github.com/goliatone/go-propdoc/pkg/metadata"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...metadata.LoaderOption) metadata.Loader {
	cfg := metadata.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...metadata.ParserOption) metadata.Parser {
	cfg := metadata.NewParserOptions(options...)
	return internalParser.New(cfg)
}
