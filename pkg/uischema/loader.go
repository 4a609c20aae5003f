package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// LoadDir loads every overlay document below dir.
func LoadDir(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return &Store{forms: make(map[string]FormOverlay)}, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("uischema: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("uischema: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS walks fsys and parses JSON/YAML overlay files. A nil filesystem or
// one without overlay files yields an empty store. Two documents describing
// the same form are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]FormOverlay)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, overlay := range doc.Forms {
			id := strings.TrimSpace(rawID)
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}
			overlay.ID = id
			overlay.Source = path
			store.forms[id] = normaliseOverlay(overlay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// parseDocument decodes YAML (a superset of JSON), round-trips the value
// through JSON so the schema validator sees plain JSON types, validates it
// and finally decodes the typed document.
func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}

	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	if err := validateDocument(generic, source); err != nil {
		return documentFile{}, err
	}

	var doc documentFile
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: decode %s: %w", source, err)
	}
	return doc, nil
}

func normaliseOverlay(overlay FormOverlay) FormOverlay {
	overlay.Title = plainText(overlay.Title)
	overlay.ActionLabel = plainText(overlay.ActionLabel)
	overlay.Description = richText(overlay.Description)

	if len(overlay.Groups) > 0 {
		groups := make(map[string]string, len(overlay.Groups))
		for name, legend := range overlay.Groups {
			groups[strings.TrimSpace(name)] = plainText(legend)
		}
		overlay.Groups = groups
	}

	fields := make(map[string]FieldOverlay, len(overlay.Fields))
	for name, field := range overlay.Fields {
		field.Label = plainText(field.Label)
		field.Description = richText(field.Description)
		if field.Group != nil {
			group := strings.TrimSpace(*field.Group)
			field.Group = &group
		}
		field.Extensions = model.NormalizeExtensions(field.Extensions)
		fields[strings.TrimSpace(name)] = field
	}
	overlay.Fields = fields
	return overlay
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
