package uischema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidDocument wraps every schema violation reported by LoadFS.
var ErrInvalidDocument = errors.New("uischema: invalid document")

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("uischema.json", bytes.NewReader(schemaDocument)); err != nil {
			compileErr = fmt.Errorf("uischema: add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("uischema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("uischema: compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateDocument checks a decoded JSON value against the bundled schema.
func validateDocument(doc any, source string) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s:\n    - %s", ErrInvalidDocument, source, strings.Join(schemaMessages(verr), "\n    - "))
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}
	return nil
}

func schemaMessages(err *jsonschema.ValidationError) []string {
	var messages []string
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)
	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}
	return messages
}
