package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindMissingInput, "meta.json", "metadata file not found")
	if got := err.Error(); got != "metadata file not found (meta.json)" {
		t.Errorf("unexpected message %q", got)
	}

	cause := errors.New("permission denied")
	wrapped := Wrap(cause, KindInputRead, "meta.json", "read metadata")
	if got := wrapped.Error(); got != "read metadata (meta.json): permission denied" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Errorf("expected cause to be reachable through Unwrap")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, KindTemplate, "", "x") != nil {
		t.Fatalf("expected nil")
	}
	if Wrapf(nil, KindTemplate, "", "x %d", 1) != nil {
		t.Fatalf("expected nil")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("orchestrator: render: %w", Wrap(errors.New("boom"), KindTemplate, "", "render template"))

	if !errors.Is(err, ErrTemplate) {
		t.Errorf("expected ErrTemplate match")
	}
	if errors.Is(err, ErrOutputWrite) {
		t.Errorf("did not expect ErrOutputWrite match")
	}
}

func TestKindOf(t *testing.T) {
	err := New(KindMetadataParse, "properties.0.name", "required field missing")
	if KindOf(err) != KindMetadataParse {
		t.Errorf("expected KindMetadataParse, got %v", KindOf(err))
	}
	if KindOf(fmt.Errorf("outer: %w", err)) != KindMetadataParse {
		t.Errorf("expected kind to survive wrapping")
	}
	if KindOf(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown")
	}
}

func TestDetailOf(t *testing.T) {
	err := &Error{Kind: KindOutputStale, Message: "stale", Detail: "--- a\n+++ b\n"}
	if got := DetailOf(fmt.Errorf("check: %w", err)); got != "--- a\n+++ b\n" {
		t.Errorf("unexpected detail %q", got)
	}
	if DetailOf(errors.New("plain")) != "" {
		t.Errorf("expected empty detail")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindMissingInput:  "missing_input",
		KindInputRead:     "input_read",
		KindMetadataParse: "metadata_parse",
		KindTemplate:      "template",
		KindOutputWrite:   "output_write",
		KindOutputStale:   "output_stale",
		KindUnknown:       "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
