package validation

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFile reports a required upload that was not supplied.
	ErrMissingFile = errors.New("validation: file is required")
	// ErrUnsupportedFileType reports an upload whose extension is not in the
	// field's allow-list.
	ErrUnsupportedFileType = errors.New("validation: file type is not allowed")
	// ErrUnknownRule reports a rule kind with no registered checker.
	ErrUnknownRule = errors.New("validation: unknown rule")
)

// FieldError ties a validation failure to the field and rule that produced
// it. Message is the user-facing text; Err is the sentinel for errors.Is.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// Errors is the ordered per-field error list produced by Validate.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the members so errors.Is and errors.As match any of them.
func (e Errors) Unwrap() []error {
	if len(e) == 0 {
		return nil
	}
	out := make([]error, len(e))
	for i, fe := range e {
		out[i] = fe
	}
	return out
}

// ByField groups messages by field name, preserving order.
func (e Errors) ByField() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// For returns the errors recorded against a single field.
func (e Errors) For(field string) Errors {
	var out Errors
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}
