package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formlist/pkg/list"
)

// State stores field values keyed by dotted paths ("profile.tags"). Nested
// segments are kept as map[string]any.
type State struct {
	values map[string]any
}

// NewState seeds the state with a deep copy of prefill.
func NewState(prefill map[string]any) *State {
	return &State{values: cloneValues(prefill)}
}

// GetValue resolves a dotted path.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// SetValue writes value at path, creating intermediate maps as needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("form: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, path, value)
}

// CanSet reports whether SetValue would accept path without writing anything.
func (s *State) CanSet(path string) error {
	if s == nil {
		return fmt.Errorf("form: state is nil")
	}
	return checkPath(s.values, path)
}

// Delete removes the value at path. Missing paths are ignored.
func (s *State) Delete(path string) {
	if s == nil {
		return
	}
	segments := splitPath(path)
	if len(segments) == 0 {
		return
	}
	node := s.values
	for _, segment := range segments[:len(segments)-1] {
		next, ok := node[segment].(map[string]any)
		if !ok {
			return
		}
		node = next
	}
	delete(node, segments[len(segments)-1])
}

// Snapshot returns a deep copy of the values with parameter sequences
// flattened into []any.
func (s *State) Snapshot() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return cloneValues(s.values)
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case *list.Parameters:
		if typed == nil {
			return nil
		}
		return deepCopy(typed.Values())
	default:
		return typed
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), ".")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, ".")
}

func getPath(root map[string]any, path string) (any, bool) {
	segments := splitPath(path)
	if root == nil || len(segments) == 0 {
		return nil, false
	}
	current := any(root)
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func checkPath(root map[string]any, path string) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("form: empty path")
	}
	node := root
	for _, segment := range segments[:len(segments)-1] {
		existing, exists := node[segment]
		if !exists || existing == nil {
			return nil
		}
		child, ok := existing.(map[string]any)
		if !ok {
			return fmt.Errorf("form: path %q crosses non-object value at %q", path, segment)
		}
		node = child
	}
	return nil
}

func setPath(root map[string]any, path string, value any) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("form: empty path")
	}
	node := root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			if existing, exists := node[segment]; exists && existing != nil {
				return fmt.Errorf("form: path %q crosses non-object value at %q", path, segment)
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}
