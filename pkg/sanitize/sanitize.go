// Package sanitize strips unsafe markup from property descriptions before they
// reach a document. It is opt-in: the default pipeline keeps descriptions as
// authored.
package sanitize

import (
	"context"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-propdoc/pkg/metadata"
)

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *bluemonday.Policy
)

// bluemonday re-encodes text; these entities are harmless in Markdown and
// would otherwise survive as literal entity text.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
)

type Option func(*Decorator)

// WithPolicy replaces the default UGC policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(d *Decorator) {
		if policy != nil {
			d.policy = policy
		}
	}
}

// Decorator sanitizes every description in the metadata.
type Decorator struct {
	policy *bluemonday.Policy
}

var _ metadata.Decorator = (*Decorator)(nil)

// New builds a Decorator using bluemonday's UGC policy unless overridden.
func New(options ...Option) *Decorator {
	d := &Decorator{policy: ugcPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decorate returns a copy of md with sanitized descriptions.
func (d *Decorator) Decorate(ctx context.Context, md metadata.Metadata) (metadata.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return metadata.Metadata{}, err
	}

	props := md.Properties()
	for i := range props {
		props[i].Description = d.Description(props[i].Description)
	}
	return metadata.New(props...), nil
}

// Description sanitizes a single description.
func (d *Decorator) Description(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(entityReplacer.Replace(d.policy.Sanitize(trimmed)))
}

func ugcPolicy() *bluemonday.Policy {
	defaultPolicyOnce.Do(func() {
		defaultPolicy = bluemonday.UGCPolicy()
	})
	return defaultPolicy
}
