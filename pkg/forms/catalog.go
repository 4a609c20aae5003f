package forms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// ErrFormNotFound is returned by Get for an unknown form ID.
var ErrFormNotFound = errors.New("forms: form not found")

// Catalog holds immutable form definitions keyed by ID. Build it once at
// startup and share it; lookups return deep copies so callers cannot mutate
// the stored definitions.
type Catalog struct {
	forms map[string]model.Form
}

// CatalogOption customises NewCatalog.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	upload []UploadOption
	extra  []model.Form
}

// WithUploadOptions forwards options to DataUpload.
func WithUploadOptions(options ...UploadOption) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.upload = append(cfg.upload, options...)
	}
}

// WithForms registers additional definitions alongside the built-in ones.
func WithForms(forms ...model.Form) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.extra = append(cfg.extra, forms...)
	}
}

// NewCatalog builds the catalog holding MethodSelection and DataUpload. Every
// definition is checked; the first structural error is returned.
func NewCatalog(options ...CatalogOption) (*Catalog, error) {
	var cfg catalogConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	defs := append([]model.Form{MethodSelection(), DataUpload(cfg.upload...)}, cfg.extra...)
	catalog := &Catalog{forms: make(map[string]model.Form, len(defs))}
	for _, form := range defs {
		if err := form.Check(); err != nil {
			return nil, fmt.Errorf("forms: %w", err)
		}
		if _, exists := catalog.forms[form.ID]; exists {
			return nil, fmt.Errorf("forms: form %q already registered", form.ID)
		}
		catalog.forms[form.ID] = form.Clone()
	}
	return catalog, nil
}

// MustCatalog panics when NewCatalog fails. Useful for init-time wiring.
func MustCatalog(options ...CatalogOption) *Catalog {
	catalog, err := NewCatalog(options...)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Get returns a copy of the form registered under id.
func (c *Catalog) Get(id string) (model.Form, error) {
	if c == nil {
		return model.Form{}, fmt.Errorf("forms: catalog is nil")
	}
	form, ok := c.forms[id]
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	return form.Clone(), nil
}

// IDs returns the registered form IDs sorted alphabetically.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Forms returns copies of every definition ordered by ID.
func (c *Catalog) Forms() []model.Form {
	ids := c.IDs()
	out := make([]model.Form, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.forms[id].Clone())
	}
	return out
}
