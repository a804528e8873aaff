package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/metadata"
)

// Parser implements metadata.Parser for Spring-style configuration metadata.
type Parser struct {
	options metadata.ParserOptions
}

var _ metadata.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options metadata.ParserOptions) metadata.Parser {
	return &Parser{options: options}
}

type document struct {
	Properties json.RawMessage `json:"properties"`
}

type rawProperty struct {
	Name         *string    `json:"name"`
	Type         *string    `json:"type"`
	Description  *string    `json:"description"`
	SourceType   *string    `json:"sourceType"`
	DefaultValue scalarText `json:"defaultValue"`
}

// Parse decodes raw into Metadata. Unknown fields are ignored.
func (p *Parser) Parse(ctx context.Context, raw []byte) (metadata.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return metadata.Metadata{}, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return metadata.Metadata{}, parseError("", errors.New("document is empty"))
	}

	if p.options.ValidateSchema {
		var generic any
		if err := json.Unmarshal(trimmed, &generic); err != nil {
			return metadata.Metadata{}, parseError("", err)
		}
		if path, err := validateStructure(generic); err != nil {
			return metadata.Metadata{}, parseError(path, err)
		}
	}

	if trimmed[0] != '{' {
		return metadata.Metadata{}, parseError("", errors.New("document root must be an object"))
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return metadata.Metadata{}, parseError(typeErrorPath("", err), err)
	}

	if len(doc.Properties) == 0 {
		return metadata.New(), nil
	}
	if bytes.Equal(bytes.TrimSpace(doc.Properties), []byte("null")) {
		return metadata.Metadata{}, parseError("properties", errors.New("properties must be an array"))
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(doc.Properties, &elements); err != nil {
		return metadata.Metadata{}, parseError("properties", err)
	}

	props := make([]metadata.Property, 0, len(elements))
	for idx, element := range elements {
		prefix := fmt.Sprintf("properties.%d", idx)

		if bytes.Equal(bytes.TrimSpace(element), []byte("null")) {
			return metadata.Metadata{}, parseError(prefix, errors.New("property must be an object"))
		}

		var rp rawProperty
		if err := json.Unmarshal(element, &rp); err != nil {
			return metadata.Metadata{}, parseError(typeErrorPath(prefix, err), err)
		}

		prop, err := rp.toProperty(prefix)
		if err != nil {
			return metadata.Metadata{}, err
		}
		props = append(props, prop)
	}

	return metadata.New(props...), nil
}

func (rp rawProperty) toProperty(prefix string) (metadata.Property, error) {
	required := []struct {
		field string
		value *string
	}{
		{"name", rp.Name},
		{"type", rp.Type},
		{"sourceType", rp.SourceType},
	}
	for _, r := range required {
		if r.value == nil {
			return metadata.Property{}, parseError(prefix+"."+r.field, errors.New("required field is missing"))
		}
		if *r.value == "" {
			return metadata.Property{}, parseError(prefix+"."+r.field, errors.New("required field is empty"))
		}
	}

	prop := metadata.Property{
		Name:         *rp.Name,
		Type:         *rp.Type,
		SourceType:   *rp.SourceType,
		DefaultValue: rp.DefaultValue.value,
	}
	if rp.Description != nil {
		prop.Description = *rp.Description
	}
	return prop, nil
}

func typeErrorPath(prefix string, err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return prefix
	}
	if prefix == "" {
		return typeErr.Field
	}
	return prefix + "." + typeErr.Field
}

func parseError(path string, err error) error {
	return perrors.Wrap(err, perrors.KindMetadataParse, path, "metadata parser: invalid metadata")
}
