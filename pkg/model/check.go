package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormIDMissing     = errors.New("model: form id is required")
	ErrFormMethodMissing = errors.New("model: form method is required")
	ErrActionMissing     = errors.New("model: form requires exactly one action field")
)

// Check verifies the structural invariants of a form definition: unique
// non-empty field names, exactly one action, defaults on every boolean and
// a required plus file_allowed rule on every file field.
func (f Form) Check() error {
	if strings.TrimSpace(f.ID) == "" {
		return ErrFormIDMissing
	}
	if strings.TrimSpace(f.Method) == "" {
		return ErrFormMethodMissing
	}

	seen := make(map[string]struct{}, len(f.Fields))
	actions := 0
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: form %q field at index %d has no name", f.ID, idx)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("model: form %q declares field %q twice", f.ID, name)
		}
		seen[name] = struct{}{}

		if err := checkField(field); err != nil {
			return fmt.Errorf("model: form %q: %w", f.ID, err)
		}
		if field.Kind == FieldKindAction {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("%w (form %q has %d)", ErrActionMissing, f.ID, actions)
	}
	return nil
}

func checkField(field Field) error {
	switch field.Kind {
	case FieldKindBoolean:
		if field.Default == nil {
			return fmt.Errorf("boolean field %q requires a default", field.Name)
		}
	case FieldKindFile:
		if !field.Required() {
			return fmt.Errorf("file field %q requires a %s rule", field.Name, RuleRequired)
		}
		if len(field.AllowedExtensions()) == 0 {
			return fmt.Errorf("file field %q requires a %s rule with at least one extension", field.Name, RuleFileAllowed)
		}
	case FieldKindAction:
	default:
		return fmt.Errorf("field %q has unsupported kind %q", field.Name, field.Kind)
	}
	return nil
}
