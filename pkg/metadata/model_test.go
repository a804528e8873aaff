package metadata_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propdoc/pkg/metadata"
)

func TestSort_OrdersByName(t *testing.T) {
	md := metadata.New(
		metadata.Property{Name: "server.port", Type: "java.lang.Integer", SourceType: "ServerProperties"},
		metadata.Property{Name: "app.name", Type: "java.lang.String", SourceType: "AppProperties"},
		metadata.Property{Name: "logging.level", Type: "java.util.Map", SourceType: "LoggingProperties"},
	)

	got := metadata.Sort(md).Names()
	want := []string{"app.name", "logging.level", "server.port"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted names mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_IsStableForDuplicateNames(t *testing.T) {
	md := metadata.New(
		metadata.Property{Name: "b", Type: "String", SourceType: "First"},
		metadata.Property{Name: "a", Type: "String", SourceType: "Only"},
		metadata.Property{Name: "b", Type: "String", SourceType: "Second"},
		metadata.Property{Name: "b", Type: "String", SourceType: "Third"},
	)

	sorted := metadata.Sort(md).Properties()
	var sources []string
	for _, p := range sorted {
		sources = append(sources, p.SourceType)
	}
	want := []string{"Only", "First", "Second", "Third"}
	if diff := cmp.Diff(want, sources); diff != "" {
		t.Fatalf("stable order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_OrderIndependent(t *testing.T) {
	a := metadata.Property{Name: "a.y", Type: "Integer", SourceType: "Bar"}
	b := metadata.Property{Name: "b.x", Type: "String", SourceType: "Foo"}
	c := metadata.Property{Name: "a.z", Type: "Boolean", SourceType: "Baz"}

	permutations := [][]metadata.Property{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	want := metadata.Sort(metadata.New(permutations[0]...)).Properties()
	for _, perm := range permutations[1:] {
		got := metadata.Sort(metadata.New(perm...)).Properties()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("permutation changed order (-want +got):\n%s", diff)
		}
	}
}

func TestSort_LeavesInputUntouched(t *testing.T) {
	md := metadata.New(
		metadata.Property{Name: "z", Type: "String", SourceType: "Z"},
		metadata.Property{Name: "a", Type: "String", SourceType: "A"},
	)

	sorted := metadata.Sort(md)

	if diff := cmp.Diff([]string{"z", "a"}, md.Names()); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	if !metadata.IsSorted(sorted) {
		t.Fatalf("expected sorted result")
	}
	if metadata.IsSorted(md) {
		t.Fatalf("expected input to remain unsorted")
	}
}

func TestSort_ByteWiseComparison(t *testing.T) {
	md := metadata.New(
		metadata.Property{Name: "a.b", Type: "T", SourceType: "S"},
		metadata.Property{Name: "A.b", Type: "T", SourceType: "S"},
		metadata.Property{Name: "a-b", Type: "T", SourceType: "S"},
	)

	got := metadata.Sort(md).Names()
	want := []string{"A.b", "a-b", "a.b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted names mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadata_PropertiesReturnsCopy(t *testing.T) {
	props := []metadata.Property{{Name: "a", Type: "String", SourceType: "A"}}
	md := metadata.New(props...)

	props[0].Name = "mutated"
	listed := md.Properties()
	listed[0].Name = "mutated again"

	if got := md.Names()[0]; got != "a" {
		t.Fatalf("expected metadata to be immutable, got name %q", got)
	}
}

func TestMetadata_MarshalJSON(t *testing.T) {
	md := metadata.New(
		metadata.Property{Name: "a.y", Type: "Integer", Description: "desc", SourceType: "Bar", DefaultValue: "5"},
		metadata.Property{Name: "b.x", Type: "String", SourceType: "Foo"},
	)

	raw, err := json.Marshal(md)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"properties":[{"name":"a.y","type":"Integer","description":"desc","sourceType":"Bar","defaultValue":"5"},{"name":"b.x","type":"String","description":"","sourceType":"Foo","defaultValue":""}]}`
	if string(raw) != want {
		t.Fatalf("unexpected json\nwant: %s\n got: %s", want, raw)
	}

	empty, err := json.Marshal(metadata.New())
	if err != nil {
		t.Fatalf("marshal empty: %v", err)
	}
	if string(empty) != `{"properties":[]}` {
		t.Fatalf("unexpected empty json %s", empty)
	}
}

func TestLoadResult(t *testing.T) {
	content := []byte(`{"properties":[]}`)
	loaded := metadata.Loaded("meta.json", content)
	content[0] = 'X'

	if loaded.IsAbsent() {
		t.Fatalf("expected loaded result")
	}
	if string(loaded.Content()) != `{"properties":[]}` {
		t.Fatalf("expected defensive copy, got %s", loaded.Content())
	}

	absent := metadata.Absent("missing.json")
	if !absent.IsAbsent() || absent.Content() != nil || absent.Location() != "missing.json" {
		t.Fatalf("unexpected absent result %#v", absent)
	}
}
