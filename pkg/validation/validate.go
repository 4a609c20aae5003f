package validation

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Result is the outcome of validating one submission.
type Result struct {
	Valid bool
	// Bools maps every boolean field to its bound value.
	Bools map[string]bool
	// Files holds the uploaded file handles of file fields that passed.
	Files map[string]*multipart.FileHeader
	// Action names the submit action present in the input, if any.
	Action string
	Errors Errors
}

// Validate binds input to form and checks every field's rules in
// declaration order. It never fails outright; problems are reported through
// Result.Errors.
func Validate(form model.Form, input Input) Result {
	result := Result{
		Bools: make(map[string]bool),
		Files: make(map[string]*multipart.FileHeader),
	}
	submitted := !input.Empty()

	for _, field := range form.Fields {
		value := Value{Field: field}
		switch field.Kind {
		case model.FieldKindBoolean:
			value.Bool = bindBool(field, input, submitted)
			result.Bools[field.Name] = value.Bool
		case model.FieldKindFile:
			value.File = input.File(field.Name)
		case model.FieldKindAction:
			if input.Has(field.Name) {
				result.Action = field.Name
			}
			continue
		}

		fieldErrs := checkRules(field, value)
		if len(fieldErrs) > 0 {
			result.Errors = append(result.Errors, fieldErrs...)
			continue
		}
		if field.Kind == model.FieldKindFile && value.File != nil {
			result.Files[field.Name] = value.File
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func checkRules(field model.Field, value Value) Errors {
	var out Errors
	for _, rule := range field.Rules {
		checker, ok := checkerFor(rule.Kind)
		if !ok {
			out = append(out, FieldError{
				Field:   field.Name,
				Rule:    rule.Kind,
				Message: fmt.Sprintf("Unsupported validation rule %q.", rule.Kind),
				Err:     ErrUnknownRule,
			})
			continue
		}
		fe, stop := checker(rule, value)
		if fe != nil {
			out = append(out, *fe)
		}
		if stop {
			break
		}
	}
	return out
}

// bindBool applies checkbox semantics. Without any submitted data the field
// keeps its default; otherwise it is true only when a value other than ""
// or "false" was posted.
func bindBool(field model.Field, input Input, submitted bool) bool {
	if !submitted {
		return field.DefaultValue()
	}
	values, ok := input.Values[field.Name]
	if !ok || len(values) == 0 {
		return false
	}
	return !IsFalseValue(values[0])
}

// IsFalseValue reports whether a posted checkbox value means unchecked.
func IsFalseValue(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || strings.EqualFold(trimmed, "false")
}
