package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// ExtensionAllowedExtensions carries a file field's allow-list on its schema.
const ExtensionAllowedExtensions = "x-allowed-extensions"

// ExtensionGroup carries a checkbox group on its schema.
const ExtensionGroup = "x-group"

// Content types a host may answer a rejected submission with.
const (
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
)

// Version is the OpenAPI version written by Export.
const Version = "3.0.3"

// Info describes the exported document.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Export builds an OpenAPI document holding one operation per form at its
// endpoint. Boolean fields become boolean properties carrying their default;
// file fields become required binary strings tagged with the allow-list. The
// document is validated before it is returned.
func Export(ctx context.Context, info Info, forms ...model.Form) (*openapi3.T, error) {
	if len(forms) == 0 {
		return nil, errors.New("openapi: at least one form is required")
	}
	if strings.TrimSpace(info.Title) == "" {
		info.Title = "Analysis forms"
	}
	if strings.TrimSpace(info.Version) == "" {
		info.Version = "1.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, form := range forms {
		if err := form.Check(); err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		item := doc.Paths.Value(form.Endpoint)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(form.Endpoint, item)
		}
		op := operationFor(form)
		switch strings.ToUpper(form.Method) {
		case http.MethodPost:
			if item.Post != nil {
				return nil, fmt.Errorf("openapi: forms %q and %q share POST %s", item.Post.OperationID, form.ID, form.Endpoint)
			}
			item.Post = op
		case http.MethodPut:
			item.Put = op
		default:
			return nil, fmt.Errorf("openapi: form %q: method %s cannot carry a form body", form.ID, form.Method)
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

func operationFor(form model.Form) *openapi3.Operation {
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchema(requestSchema(form), []string{form.Enctype()}))

	accepted := openapi3.NewResponse().WithDescription("Submission accepted")
	rejected := openapi3.NewResponse().
		WithDescription("Validation failed. Browsers get the form re-rendered with its errors; JSON clients get the errors keyed by field name").
		WithContent(openapi3.Content{
			ContentTypeHTML: openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
			ContentTypeJSON: openapi3.NewMediaType().WithSchema(errorSchema()),
		})

	return &openapi3.Operation{
		OperationID: form.ID,
		Summary:     form.Title,
		Description: form.Description,
		Tags:        []string{"forms"},
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: accepted}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{Value: rejected}),
		),
	}
}

func requestSchema(form model.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, field := range form.Fields {
		var prop *openapi3.Schema
		switch field.Kind {
		case model.FieldKindBoolean:
			prop = openapi3.NewBoolSchema().WithDefault(field.DefaultValue())
			if field.Group != "" {
				prop.Extensions = map[string]any{ExtensionGroup: field.Group}
			}
		case model.FieldKindFile:
			prop = openapi3.NewStringSchema().WithFormat("binary")
			prop.Extensions = map[string]any{ExtensionAllowedExtensions: field.AllowedExtensions()}
			if field.Required() {
				required = append(required, field.Name)
			}
		case model.FieldKindAction:
			prop = openapi3.NewStringSchema().WithDefault(field.Label)
		default:
			continue
		}
		prop.Title = field.Label
		prop.Description = field.Description
		schema.WithProperty(field.Name, prop)
	}
	schema.Required = required
	return schema
}

func errorSchema() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	return openapi3.NewObjectSchema().
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(messages)).
		WithProperty("form_errors", messages)
}

// Marshal encodes doc as "json" (indented) or "yaml".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return append(data, '\n'), nil
	case "yaml", "yml":
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("openapi: convert yaml: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("openapi: encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}
