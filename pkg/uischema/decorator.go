package uischema

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// ErrUnknownField is returned when an overlay names a field the form does
// not declare.
var ErrUnknownField = errors.New("uischema: unknown field")

// Decorator applies overlays from a Store to forms passing through it.
type Decorator struct {
	store *Store
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator returns a decorator backed by store. A nil or empty store
// leaves forms untouched.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate applies the overlay registered for form.ID, if any, and re-checks
// the result.
func (d *Decorator) Decorate(form *model.Form) error {
	if d == nil || form == nil {
		return nil
	}
	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}
	if err := Apply(form, overlay); err != nil {
		return err
	}
	if err := form.Check(); err != nil {
		return fmt.Errorf("uischema: overlay %s: %w", overlay.Source, err)
	}
	return nil
}

// Apply copies overlay values onto form in place.
func Apply(form *model.Form, overlay FormOverlay) error {
	for name := range overlay.Fields {
		if _, ok := form.Field(name); !ok {
			return fmt.Errorf("%w %q in overlay for form %q", ErrUnknownField, name, form.ID)
		}
	}

	if overlay.Title != "" {
		form.Title = overlay.Title
	}
	if overlay.Description != "" {
		form.Description = overlay.Description
	}
	if len(overlay.Groups) > 0 && form.Metadata == nil {
		form.Metadata = make(map[string]string, len(overlay.Groups))
	}
	for group, legend := range overlay.Groups {
		form.Metadata["group."+group] = legend
	}

	for idx := range form.Fields {
		field := &form.Fields[idx]
		if field.Kind == model.FieldKindAction && overlay.ActionLabel != "" {
			field.Label = overlay.ActionLabel
		}
		cfg, ok := overlay.Fields[field.Name]
		if !ok {
			continue
		}
		if err := applyField(field, cfg); err != nil {
			return fmt.Errorf("uischema: form %q: %w", form.ID, err)
		}
	}
	return nil
}

func applyField(field *model.Field, cfg FieldOverlay) error {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.Group != nil {
		if field.Kind == model.FieldKindAction {
			return fmt.Errorf("action field %q cannot be grouped", field.Name)
		}
		field.Group = *cfg.Group
	}
	if len(cfg.Extensions) == 0 {
		return nil
	}
	if field.Kind != model.FieldKindFile {
		return fmt.Errorf("extensions only apply to file fields, %q is %s", field.Name, field.Kind)
	}

	rules := make([]model.Rule, 0, len(field.Rules))
	for _, rule := range field.Rules {
		if rule.Kind == model.RuleFileAllowed {
			message := rule.Params["message"]
			rule = model.FileAllowed(cfg.Extensions...)
			if message != "" {
				rule.Params["message"] = message
			}
		}
		rules = append(rules, rule)
	}
	field.Rules = rules
	return nil
}
