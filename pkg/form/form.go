// Package form provides the root ancestor that list controllers bind to: it
// owns the readiness signal and the value store that parameter sequences are
// published into.
package form

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formlist/pkg/event"
	"github.com/goliatone/go-formlist/pkg/list"
	"github.com/goliatone/go-formlist/pkg/model"
)

// Form is the top-level ancestor of a field tree. Values are keyed by field
// name; names may be dotted to nest values.
type Form struct {
	ready  event.Once
	state  *State
	logger *slog.Logger
}

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the logger used to report values that cannot be stored.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a form seeded with prefill.
func New(prefill map[string]any, opts ...Option) *Form {
	f := &Form{
		state:  NewState(prefill),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Ready defers callback until Start is called. Once started, callbacks run
// immediately.
func (f *Form) Ready(callback func()) {
	f.ready.Subscribe(callback)
}

// Start fires the readiness signal. Only the first call has an effect.
func (f *Form) Start() {
	f.ready.Fire()
}

// Started reports whether Start has been called.
func (f *Form) Started() bool {
	return f.ready.Fired()
}

// SetValue persists value under schema.Name. A nil value, including a nil
// *list.Parameters, removes the entry.
func (f *Form) SetValue(schema model.FieldSchema, value any) {
	if params, ok := value.(*list.Parameters); ok && params == nil {
		value = nil
	}
	if value == nil {
		f.state.Delete(schema.Name)
		return
	}
	if err := f.state.SetValue(schema.Name, value); err != nil {
		f.logger.Warn("form: value not stored", "field", schema.Name, "error", err)
	}
}

// SetList has the signature of list.SetValueFunc.
func (f *Form) SetList(schema model.FieldSchema, params *list.Parameters) {
	f.SetValue(schema, params)
}

// Value returns the stored value at path.
func (f *Form) Value(path string) (any, bool) {
	return f.state.GetValue(path)
}

// Parameters returns the sequence stored at path. Plain slices from prefill
// data are wrapped and stored back so later edits are shared.
func (f *Form) Parameters(path string) *list.Parameters {
	value, ok := f.state.GetValue(path)
	if !ok {
		return nil
	}
	switch typed := value.(type) {
	case *list.Parameters:
		return typed
	case []any:
		if len(typed) == 0 {
			return nil
		}
		params := list.NewParameters(typed...)
		if err := f.state.SetValue(path, params); err != nil {
			f.logger.Warn("form: sequence not stored", "field", path, "error", err)
		}
		return params
	default:
		return nil
	}
}

// Snapshot returns a deep copy of every value with sequences flattened.
func (f *Form) Snapshot() map[string]any {
	return f.state.Snapshot()
}

// JSON encodes the snapshot.
func (f *Form) JSON() ([]byte, error) {
	payload, err := json.MarshalIndent(f.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("form: marshal values: %w", err)
	}
	return payload, nil
}

// List builds a list controller bound to this form, seeded from the value
// stored under schema.Name. It fails when schema.Name cannot hold a value, for
// example when a prefix of the path already stores a scalar.
func (f *Form) List(schema model.FieldSchema, opts ...list.Option) (*list.Controller, error) {
	if err := f.state.CanSet(schema.Name); err != nil {
		return nil, fmt.Errorf("form: list %q: %w", schema.Name, err)
	}
	ctrl, err := list.New(f, schema, f.Parameters(schema.Name), f.SetList, opts...)
	if err != nil {
		return nil, fmt.Errorf("form: list %q: %w", schema.Name, err)
	}
	return ctrl, nil
}
