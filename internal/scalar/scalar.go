// Package scalar implements a minimal value editor used by the CLI and by
// tests that need a real child behind a list controller.
package scalar

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formlist/pkg/element"
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

// Editor holds one value and writes it through its slot callback.
type Editor struct {
	element.Base

	schema   model.FieldSchema
	value    any
	hasValue bool
	setValue registry.SetValueFunc
	removed  bool
}

// New is a registry.Constructor.
func New(cfg registry.Config) (registry.Child, error) {
	e := &Editor{
		schema:   cfg.Schema,
		value:    cfg.Value,
		hasValue: cfg.HasValue,
		setValue: cfg.SetValue,
	}
	if e.hasValue {
		e.persist()
	}
	return e, nil
}

// Register adds the editor under the string, number and boolean types.
func Register(reg *registry.Registry) error {
	for _, name := range []string{model.TypeString, model.TypeNumber, model.TypeBoolean} {
		if err := reg.Register(name, New); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the field schema the editor was built for.
func (e *Editor) Schema() model.FieldSchema {
	return e.schema
}

// Value returns the current value.
func (e *Editor) Value() (any, bool) {
	return e.value, e.hasValue
}

// Set updates the value and persists it.
func (e *Editor) Set(value any) {
	e.value = value
	e.hasValue = value != nil
	e.persist()
}

// Validate enforces Required: the value must be present and, for strings,
// non-blank.
func (e *Editor) Validate() bool {
	e.ClearErrors()
	if !e.schema.Required {
		return true
	}
	if !e.hasValue || e.value == nil {
		e.SetError(e.requiredMessage())
		return false
	}
	if text, ok := e.value.(string); ok && strings.TrimSpace(text) == "" {
		e.SetError(e.requiredMessage())
		return false
	}
	return true
}

func (e *Editor) requiredMessage() string {
	label := e.schema.DisplayLabel()
	if label == "" {
		label = "Value"
	}
	return fmt.Sprintf("%s is required.", label)
}

// Remove marks the editor released. Further Set calls are not persisted.
func (e *Editor) Remove() {
	e.removed = true
}

// Removed reports whether Remove was called.
func (e *Editor) Removed() bool {
	return e.removed
}

func (e *Editor) persist() {
	if e.removed || e.setValue == nil {
		return
	}
	e.setValue(e.schema, e.value)
}
