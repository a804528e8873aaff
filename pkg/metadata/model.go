package metadata

import (
	"encoding/json"
	"slices"
	"strings"
)

// Property describes one configuration property. Name, Type and SourceType
// are always non-empty after a successful parse. An empty Description or
// DefaultValue means none was declared. Every field is always encoded so
// strict template engines can address optional fields.
type Property struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	SourceType   string `json:"sourceType"`
	DefaultValue string `json:"defaultValue"`
}

// Metadata is the immutable root of the model: an ordered sequence of
// properties. Property names are not required to be unique.
type Metadata struct {
	properties []Property
}

// New builds a Metadata holding a copy of props in the given order.
func New(props ...Property) Metadata {
	return Metadata{properties: slices.Clone(props)}
}

// Properties returns a copy of the property list.
func (m Metadata) Properties() []Property {
	return slices.Clone(m.properties)
}

// Len returns the number of properties.
func (m Metadata) Len() int {
	return len(m.properties)
}

// Names returns the property names in order.
func (m Metadata) Names() []string {
	names := make([]string, 0, len(m.properties))
	for _, p := range m.properties {
		names = append(names, p.Name)
	}
	return names
}

// MarshalJSON encodes the model with the same field names as the metadata
// input so templates can address metadata.properties[n].name.
func (m Metadata) MarshalJSON() ([]byte, error) {
	props := m.properties
	if props == nil {
		props = []Property{}
	}
	return json.Marshal(struct {
		Properties []Property `json:"properties"`
	}{Properties: props})
}

// Sort returns a new Metadata whose properties are ordered by ascending
// byte-wise Name. The sort is stable so properties sharing a name keep their
// relative order. The input is left untouched.
func Sort(m Metadata) Metadata {
	sorted := slices.Clone(m.properties)
	slices.SortStableFunc(sorted, func(a, b Property) int {
		return strings.Compare(a.Name, b.Name)
	})
	return Metadata{properties: sorted}
}

// IsSorted reports whether the properties are already in canonical order.
func IsSorted(m Metadata) bool {
	return slices.IsSortedFunc(m.properties, func(a, b Property) int {
		return strings.Compare(a.Name, b.Name)
	})
}
