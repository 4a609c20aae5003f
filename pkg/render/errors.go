package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Apply copies the mapping into render options.
func (m ErrorMapping) Apply(opts *RenderOptions) {
	if opts == nil {
		return
	}
	opts.Errors = m.Fields
	opts.FormErrors = MergeFormErrors(opts.FormErrors, m.Form...)
}

// ErrorsFromValidation maps a validation error list onto form. Errors naming
// a field the form does not declare are kept as form-level messages.
func ErrorsFromValidation(form model.Form, errs validation.Errors) ErrorMapping {
	return MapErrorPayload(form, errs.ByField())
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises an error payload keyed by field path into field
// names. Keys may use JSON pointer or dotted notation ("/body/datafile",
// "$.datafile"); request wrappers are dropped. Unknown or form-level keys are
// collected as form errors so messages are not lost.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		names[field.Name] = struct{}{}
	}

	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, ok := fieldFromPath(rawPath, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func fieldFromPath(raw string, names map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := parsePathSegments(raw)
	segments = dropWrapperSegments(segments)
	if len(segments) == 0 {
		return "", false
	}
	if _, ok := names[segments[0]]; ok {
		return segments[0], true
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = replacer.Replace(clean)
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 && isWrapperSegment(segments[0]) {
		segments = segments[1:]
	}
	return segments
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "form":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(in map[string][]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
