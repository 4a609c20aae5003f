package uischema

import (
	_ "embed"
)

// schemaDocument is the JSON Schema every overlay document must satisfy.
//
//go:embed schema.json
var schemaDocument []byte

// SchemaDocument returns a copy of the bundled JSON Schema.
func SchemaDocument() []byte {
	return append([]byte(nil), schemaDocument...)
}
