package vanilla

// ChromeClass is a typed identifier for the CSS classes wrapping fields.
type ChromeClass string

const (
	ClassForm     ChromeClass = "af-form"
	ClassHeader   ChromeClass = "af-header"
	ClassFieldset ChromeClass = "af-fieldset"
	ClassSection  ChromeClass = "af-section"
	ClassField    ChromeClass = "af-field"
	ClassActions  ChromeClass = "af-actions"
	ClassErrors   ChromeClass = "af-errors"
)

// ChromeClasses overrides the default class per chrome element. Empty entries
// keep the default.
type ChromeClasses struct {
	Form     string
	Header   string
	Fieldset string
	Section  string
	Actions  string
	Errors   string
}

func (c ChromeClasses) resolve() map[string]string {
	return map[string]string{
		"form":     classOr(c.Form, ClassForm),
		"header":   classOr(c.Header, ClassHeader),
		"fieldset": classOr(c.Fieldset, ClassFieldset),
		"section":  classOr(c.Section, ClassSection),
		"field":    string(ClassField),
		"actions":  classOr(c.Actions, ClassActions),
		"errors":   classOr(c.Errors, ClassErrors),
	}
}

func classOr(value string, fallback ChromeClass) string {
	if cleaned := sanitizeClassList(value); cleaned != "" {
		return string(fallback) + " " + cleaned
	}
	return string(fallback)
}
