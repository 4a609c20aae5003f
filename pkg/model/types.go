package model

import "strings"

// FieldKind enumerates the input kinds a form can declare.
type FieldKind string

const (
	FieldKindBoolean FieldKind = "boolean"
	FieldKindFile    FieldKind = "file"
	FieldKindAction  FieldKind = "action"
)

const (
	RuleRequired    = "required"
	RuleFileAllowed = "file_allowed"
)

// RuleParamExtensions holds the comma separated allow-list of a
// file_allowed rule.
const RuleParamExtensions = "extensions"

const (
	EnctypeURLEncoded = "application/x-www-form-urlencoded"
	EnctypeMultipart  = "multipart/form-data"
)

// Rule represents a single validation constraint applied to a field. Use the
// Rule* constants to reference the canonical kinds. Parameters are encoded as
// strings to keep JSON snapshots stable.
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input inside a form definition.
type Field struct {
	Name        string            `json:"name"`
	Kind        FieldKind         `json:"kind"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Group       string            `json:"group,omitempty"`
	Default     *bool             `json:"default,omitempty"`
	Rules       []Rule            `json:"rules,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Form is the top-level definition renderers and validators consume.
type Form struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the given name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldsOfKind returns the fields matching kind in declaration order.
func (f Form) FieldsOfKind(kind FieldKind) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Kind == kind {
			out = append(out, field)
		}
	}
	return out
}

// Action returns the submit action of the form.
func (f Form) Action() (Field, bool) {
	actions := f.FieldsOfKind(FieldKindAction)
	if len(actions) == 0 {
		return Field{}, false
	}
	return actions[0], true
}

// Enctype reports the encoding a browser must use to submit the form.
func (f Form) Enctype() string {
	if len(f.FieldsOfKind(FieldKindFile)) > 0 {
		return EnctypeMultipart
	}
	return EnctypeURLEncoded
}

// Groups returns the distinct non-empty field groups in first-seen order.
func (f Form) Groups() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, field := range f.Fields {
		if field.Group == "" {
			continue
		}
		if _, ok := seen[field.Group]; ok {
			continue
		}
		seen[field.Group] = struct{}{}
		out = append(out, field.Group)
	}
	return out
}

// DefaultValue reports the boolean default; fields without one default to
// false.
func (f Field) DefaultValue() bool {
	return f.Default != nil && *f.Default
}

// Rule returns the first rule of the given kind.
func (f Field) Rule(kind string) (Rule, bool) {
	for _, rule := range f.Rules {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return Rule{}, false
}

// Required reports whether the field carries a required rule.
func (f Field) Required() bool {
	_, ok := f.Rule(RuleRequired)
	return ok
}

// AllowedExtensions returns the lower-cased extension allow-list of a
// file_allowed rule, or nil when the field has none.
func (f Field) AllowedExtensions() []string {
	rule, ok := f.Rule(RuleFileAllowed)
	if !ok {
		return nil
	}
	return SplitExtensions(rule.Params[RuleParamExtensions])
}

// Accept renders the allow-list as an HTML accept attribute value.
func (f Field) Accept() string {
	exts := f.AllowedExtensions()
	if len(exts) == 0 {
		return ""
	}
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = "." + ext
	}
	return strings.Join(out, ",")
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := f
	out.Metadata = cloneStringMap(f.Metadata)
	if f.Fields != nil {
		out.Fields = make([]Field, len(f.Fields))
		for i, field := range f.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Default != nil {
		value := *f.Default
		out.Default = &value
	}
	out.Metadata = cloneStringMap(f.Metadata)
	if f.Rules != nil {
		out.Rules = make([]Rule, len(f.Rules))
		for i, rule := range f.Rules {
			out.Rules[i] = Rule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
		}
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
