package model

import "strings"

// Built-in editor type identifiers. Registries may add their own.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeList    = "list"
)

// DefaultEntity is the noun used in messages when a schema does not declare
// one.
const DefaultEntity = "item"

// FieldSchema describes one field of a form. List fields carry cardinality
// bounds and the schema of the repeated child in Field; numeric bounds use 0
// for "not set", so a Min of 0 and an absent Min behave the same way.
type FieldSchema struct {
	Name       string       `json:"name" yaml:"name" toml:"name"`
	Label      string       `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Entity     string       `json:"entity,omitempty" yaml:"entity,omitempty" toml:"entity,omitempty"`
	Type       string       `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Required   bool         `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Min        int          `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty" validate:"gte=0"`
	Max        int          `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty" validate:"gte=0"`
	DefaultNum int          `json:"defaultNum,omitempty" yaml:"defaultNum,omitempty" toml:"defaultNum,omitempty" validate:"gte=0"`
	Default    any          `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Field      *FieldSchema `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty"`
}

// EntityName returns the configured entity noun or DefaultEntity.
func (s FieldSchema) EntityName() string {
	if entity := strings.TrimSpace(s.Entity); entity != "" {
		return entity
	}
	return DefaultEntity
}

// DisplayLabel returns the label, falling back to the field name.
func (s FieldSchema) DisplayLabel() string {
	if label := strings.TrimSpace(s.Label); label != "" {
		return label
	}
	return s.Name
}

// IsList reports whether the schema describes a repeatable field.
func (s FieldSchema) IsList() bool {
	return strings.EqualFold(strings.TrimSpace(s.Type), TypeList)
}

// InitialCount is the number of items a list starts with when no data exists:
// DefaultNum, then Min, then one.
func (s FieldSchema) InitialCount() int {
	if s.DefaultNum > 0 {
		return s.DefaultNum
	}
	if s.Min > 0 {
		return s.Min
	}
	return 1
}

// Clone returns a deep copy of the schema tree. Default values are shared.
func (s FieldSchema) Clone() FieldSchema {
	out := s
	if s.Field != nil {
		child := s.Field.Clone()
		out.Field = &child
	}
	return out
}

// Normalize trims identifiers and lower-cases the type, recursing into the
// child schema.
func (s *FieldSchema) Normalize() {
	if s == nil {
		return
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Label = strings.TrimSpace(s.Label)
	s.Entity = strings.TrimSpace(s.Entity)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" && s.Field != nil {
		s.Type = TypeList
	}
	s.Field.Normalize()
}
