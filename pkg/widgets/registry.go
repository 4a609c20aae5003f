package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetCheckbox = "checkbox"
	WidgetToggle   = "toggle"
	WidgetFile     = "file"
	WidgetSubmit   = "submit"
)

// MetadataKey is the field metadata entry that pins a widget explicitly.
const MetadataKey = "widget"

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit metadata or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Metadata["widget"] is honoured
// before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Metadata[MetadataKey]); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// PartialKey returns the theme partial key for a widget ("forms.checkbox").
func PartialKey(widget string) string {
	return "forms." + widget
}

// Decorate implements model.Decorator, recording the resolved widget in each
// field's metadata. Existing values are preserved.
func (r *Registry) Decorate(form *model.Form) error {
	if r == nil || form == nil {
		return nil
	}
	for idx, field := range form.Fields {
		widget, ok := r.Resolve(field)
		if !ok {
			continue
		}
		if field.Metadata[MetadataKey] != "" {
			continue
		}
		metadata := make(map[string]string, len(field.Metadata)+1)
		for key, value := range field.Metadata {
			metadata[key] = value
		}
		metadata[MetadataKey] = widget
		field.Metadata = metadata
		form.Fields[idx] = field
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 10, func(field model.Field) bool {
		return field.Kind == model.FieldKindBoolean
	})
	r.Register(WidgetFile, 10, func(field model.Field) bool {
		return field.Kind == model.FieldKindFile
	})
	r.Register(WidgetSubmit, 10, func(field model.Field) bool {
		return field.Kind == model.FieldKindAction
	})
}
