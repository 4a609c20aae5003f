package model

import (
	"strings"
)

// Boolean declares a checkbox style field with a mandatory default.
func Boolean(name, label string, def bool) Field {
	return Field{
		Name:    name,
		Kind:    FieldKindBoolean,
		Label:   labelOrDefault(name, label),
		Default: &def,
	}
}

// File declares a required upload field restricted to the given extensions.
func File(name, label string, extensions ...string) Field {
	return Field{
		Name:  name,
		Kind:  FieldKindFile,
		Label: labelOrDefault(name, label),
		Rules: []Rule{
			{Kind: RuleRequired},
			FileAllowed(extensions...),
		},
	}
}

// Submit declares the submit action. Its name is "submit" to match what
// browsers post for a named submit button.
func Submit(label string) Field {
	return Field{
		Name:  "submit",
		Kind:  FieldKindAction,
		Label: labelOrDefault("submit", label),
	}
}

// FileAllowed builds a file_allowed rule from an extension list. Extensions
// are normalised to lower case without a leading dot.
func FileAllowed(extensions ...string) Rule {
	return Rule{
		Kind: RuleFileAllowed,
		Params: map[string]string{
			RuleParamExtensions: JoinExtensions(extensions),
		},
	}
}

// InGroup returns a copy of the field assigned to group.
func (f Field) InGroup(group string) Field {
	out := f.Clone()
	out.Group = strings.TrimSpace(group)
	return out
}

// WithDescription returns a copy of the field carrying help text.
func (f Field) WithDescription(description string) Field {
	out := f.Clone()
	out.Description = description
	return out
}

// NormalizeExtensions lower-cases, trims and de-duplicates extensions while
// preserving order. Leading dots are removed.
func NormalizeExtensions(extensions []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		clean := strings.ToLower(strings.TrimSpace(ext))
		clean = strings.TrimLeft(clean, ".")
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

// JoinExtensions encodes an allow-list into a rule parameter.
func JoinExtensions(extensions []string) string {
	return strings.Join(NormalizeExtensions(extensions), ",")
}

// SplitExtensions decodes a rule parameter into an allow-list.
func SplitExtensions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeExtensions(strings.Split(raw, ","))
}

func labelOrDefault(name, label string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return DefaultLabeler(name)
}
