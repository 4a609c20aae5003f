package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation summarises one form operation found in a document.
type Operation struct {
	ID          string
	Method      string
	Path        string
	ContentType string
	Fields      []Field
}

// Field summarises a request body property.
type Field struct {
	Name       string
	Type       string
	Format     string
	Default    any
	Required   bool
	Group      string
	Extensions []string
}

// Parse loads a JSON or YAML document, validates it and returns its form
// operations sorted by path then method.
func Parse(ctx context.Context, data []byte) ([]Operation, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	var out []Operation
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			summary, ok := summarise(op.RequestBody.Value.Content)
			if !ok {
				continue
			}
			summary.ID = op.OperationID
			summary.Method = strings.ToUpper(method)
			summary.Path = path
			out = append(out, summary)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func summarise(content openapi3.Content) (Operation, bool) {
	for _, mediaType := range []string{"multipart/form-data", "application/x-www-form-urlencoded"} {
		mt, ok := content[mediaType]
		if !ok || mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		schema := mt.Schema.Value

		required := make(map[string]struct{}, len(schema.Required))
		for _, name := range schema.Required {
			required[name] = struct{}{}
		}

		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		op := Operation{ContentType: mediaType}
		for _, name := range names {
			ref := schema.Properties[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			prop := ref.Value
			_, isRequired := required[name]
			op.Fields = append(op.Fields, Field{
				Name:       name,
				Type:       firstSchemaType(prop.Type),
				Format:     prop.Format,
				Default:    prop.Default,
				Required:   isRequired,
				Group:      extensionString(prop.Extensions[ExtensionGroup]),
				Extensions: extensionStrings(prop.Extensions[ExtensionAllowedExtensions]),
			})
		}
		return op, true
	}
	return Operation{}, false
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Extension values are plain Go values on exported documents and may be raw
// JSON on loaded ones, so both shapes are accepted.
func extensionString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.RawMessage:
		var out string
		_ = json.Unmarshal(v, &out)
		return out
	default:
		return ""
	}
}

func extensionStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case json.RawMessage:
		var out []string
		_ = json.Unmarshal(v, &out)
		return out
	default:
		return nil
	}
}
