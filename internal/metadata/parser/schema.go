package parser

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schema/metadata.schema.json
var metadataSchemaJSON []byte

var (
	schemaOnce sync.Once
	schemaVal  *openapi3.Schema
	schemaErr  error
)

func metadataSchema() (*openapi3.Schema, error) {
	schemaOnce.Do(func() {
		schema := openapi3.NewSchema()
		if err := json.Unmarshal(metadataSchemaJSON, schema); err != nil {
			schemaErr = err
			return
		}
		schemaVal = schema
	})
	return schemaVal, schemaErr
}

// validateStructure checks a generically decoded document against the
// embedded schema. The returned path is dotted (properties.1.type).
func validateStructure(doc any) (string, error) {
	schema, err := metadataSchema()
	if err != nil {
		return "", err
	}
	if err := schema.VisitJSON(doc); err != nil {
		var se *openapi3.SchemaError
		if errors.As(err, &se) {
			return strings.Join(se.JSONPointer(), "."), errors.New(se.Reason)
		}
		return "", err
	}
	return "", nil
}
