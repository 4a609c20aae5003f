package validation

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Value is what a checker sees for one field after binding.
type Value struct {
	Field model.Field
	Bool  bool
	File  *multipart.FileHeader
}

// Checker evaluates one rule against a bound value. Returning stop=true ends
// the rule chain for the field.
type Checker func(rule model.Rule, value Value) (err *FieldError, stop bool)

var checkers = map[string]Checker{
	model.RuleRequired:    checkRequired,
	model.RuleFileAllowed: checkFileAllowed,
}

func checkerFor(kind string) (Checker, bool) {
	fn, ok := checkers[kind]
	return fn, ok
}

func checkRequired(rule model.Rule, value Value) (*FieldError, bool) {
	switch value.Field.Kind {
	case model.FieldKindFile:
		if value.File == nil || strings.TrimSpace(value.File.Filename) == "" {
			return &FieldError{
				Field:   value.Field.Name,
				Rule:    rule.Kind,
				Message: messageOr(rule, "This field is required."),
				Err:     ErrMissingFile,
			}, true
		}
	case model.FieldKindBoolean:
		if !value.Bool {
			return &FieldError{
				Field:   value.Field.Name,
				Rule:    rule.Kind,
				Message: messageOr(rule, "This field is required."),
			}, true
		}
	}
	return nil, false
}

func checkFileAllowed(rule model.Rule, value Value) (*FieldError, bool) {
	if value.File == nil {
		return nil, false
	}
	allowed := model.SplitExtensions(rule.Params[model.RuleParamExtensions])
	if FilenameAllowed(value.File.Filename, allowed) {
		return nil, false
	}
	return &FieldError{
		Field:   value.Field.Name,
		Rule:    rule.Kind,
		Message: messageOr(rule, fmt.Sprintf("File does not have an approved extension: %s", strings.Join(allowed, ", "))),
		Err:     ErrUnsupportedFileType,
	}, false
}

// FilenameAllowed reports whether filename ends with "." plus one of the
// allowed extensions, ignoring case.
func FilenameAllowed(filename string, allowed []string) bool {
	lower := strings.ToLower(strings.TrimSpace(filename))
	if lower == "" {
		return false
	}
	for _, ext := range model.NormalizeExtensions(allowed) {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// messageOr lets a rule carry its own message under Params["message"].
func messageOr(rule model.Rule, fallback string) string {
	if msg := strings.TrimSpace(rule.Params["message"]); msg != "" {
		return msg
	}
	return fallback
}
