package registry

import "github.com/goliatone/go-formlist/pkg/model"

// Parent is an ancestor capable of deferring work until it is ready.
type Parent interface {
	Ready(callback func())
}

// Child is a field editor bound to one slot of a parameter sequence.
type Child interface {
	// Validate reports whether the editor holds a valid value, displaying
	// its own errors as a side effect.
	Validate() bool
	// Remove releases the editor's resources. The editor is not reused.
	Remove()
}

// SetValueFunc persists a child's current value into its slot.
type SetValueFunc func(schema model.FieldSchema, value any)

// Config carries everything a constructor needs to build one child.
type Config struct {
	// Host is the list controller (or form) the child belongs to.
	Host Parent
	// Schema is the child field schema.
	Schema model.FieldSchema
	// Value is the stored value when HasValue is true.
	Value    any
	HasValue bool
	// SetValue writes into the slot the child currently occupies.
	SetValue SetValueFunc
}

// Constructor builds a child editor.
type Constructor func(cfg Config) (Child, error)
