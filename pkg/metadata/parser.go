package metadata

import "context"

// Parser converts raw metadata content into the typed model.
type Parser interface {
	Parse(ctx context.Context, raw []byte) (Metadata, error)
}

// ParserOptions configures parser behaviour.
type ParserOptions struct {
	// ValidateSchema checks the raw document against the embedded structural
	// schema before decoding, producing field-level error paths.
	ValidateSchema bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithSchemaValidation toggles structural schema validation.
func WithSchemaValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateSchema = enabled
	}
}

// NewParserOptions applies ParserOption functions on top of the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ValidateSchema: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
