package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemePartials names the templates the vanilla renderer uses for
// each field kind. Theme manifests override them through their Templates map.
func DefaultThemePartials() map[string]string {
	return map[string]string{
		"forms.checkbox": "templates/components/checkbox.tmpl",
		"forms.toggle":   "templates/components/toggle.tmpl",
		"forms.file":     "templates/components/file.tmpl",
		"forms.submit":   "templates/components/submit.tmpl",
	}
}

// ThemeConfig derives renderer configuration from a go-theme selection.
// fallbacks fill partials neither the manifest nor the variant define.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := selection.RendererTheme(fallbacks)
	return &cfg
}

// CSSVarsStyle renders custom properties as an inline style value with keys
// sorted for stable output.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
