package list

import (
	"encoding/json"
	"slices"
)

// Parameters is the ordered value sequence backing a list. The controller and
// the owning form share it by pointer: children write into slots in place and
// the form observes those writes without further notification. A nil
// *Parameters means nothing is persisted.
type Parameters struct {
	values []any
}

// NewParameters wraps values in a new sequence. The slice is copied.
func NewParameters(values ...any) *Parameters {
	return &Parameters{values: append([]any(nil), values...)}
}

// Len returns the number of slots. A nil sequence has none.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// At returns the value stored in slot i.
func (p *Parameters) At(i int) any {
	return p.values[i]
}

// Set overwrites slot i.
func (p *Parameters) Set(i int, value any) {
	p.values[i] = value
}

// Values returns a copy of the stored values, or nil for a nil sequence.
func (p *Parameters) Values() []any {
	if p == nil {
		return nil
	}
	return append([]any(nil), p.values...)
}

// MarshalJSON encodes the sequence as a JSON array.
func (p *Parameters) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	values := p.values
	if values == nil {
		values = []any{}
	}
	return json.Marshal(values)
}

// UnmarshalJSON decodes a JSON array into the sequence.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var values []any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	p.values = values
	return nil
}

func (p *Parameters) append(value any) {
	p.values = append(p.values, value)
}

func (p *Parameters) removeAt(i int) {
	p.values = slices.Delete(p.values, i, i+1)
}

func (p *Parameters) move(from, to int) {
	value := p.values[from]
	p.values = slices.Delete(p.values, from, from+1)
	p.values = slices.Insert(p.values, to, value)
}

// asParameters converts a stored value into a sequence. Empty input yields
// nil so callers fall back to defaults. wrapped reports that a new sequence
// was allocated and still has to be published to the owner.
func asParameters(value any) (params *Parameters, wrapped bool) {
	switch typed := value.(type) {
	case *Parameters:
		if typed.Len() == 0 {
			return nil, false
		}
		return typed, false
	case []any:
		if len(typed) == 0 {
			return nil, false
		}
		return NewParameters(typed...), true
	default:
		return nil, false
	}
}
