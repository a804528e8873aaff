package metadata

import "context"

// Decorator derives a new Metadata from a parsed one before it is sorted and
// rendered. Decorators must not reorder properties.
type Decorator interface {
	Decorate(ctx context.Context, md Metadata) (Metadata, error)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(ctx context.Context, md Metadata) (Metadata, error)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(ctx context.Context, md Metadata) (Metadata, error) {
	return fn(ctx, md)
}
