package scalar

import (
	"testing"

	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

func TestEditor_PersistsStoredValue(t *testing.T) {
	var written []any
	child, err := New(registry.Config{
		Schema:   model.FieldSchema{Type: model.TypeString},
		Value:    "hello",
		HasValue: true,
		SetValue: func(_ model.FieldSchema, value any) { written = append(written, value) },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	editor := child.(*Editor)
	editor.Set("world")

	if len(written) != 2 || written[0] != "hello" || written[1] != "world" {
		t.Fatalf("unexpected writes: %v", written)
	}

	editor.Remove()
	editor.Set("ignored")
	if len(written) != 2 {
		t.Fatalf("removed editor must not persist, got %v", written)
	}
	if !editor.Removed() {
		t.Fatalf("expected editor to report removal")
	}
}

func TestEditor_ValidateRequired(t *testing.T) {
	cases := []struct {
		name  string
		cfg   registry.Config
		valid bool
	}{
		{name: "optional unset", cfg: registry.Config{Schema: model.FieldSchema{}}, valid: true},
		{name: "required unset", cfg: registry.Config{Schema: model.FieldSchema{Required: true}}, valid: false},
		{name: "required blank", cfg: registry.Config{Schema: model.FieldSchema{Required: true}, Value: "  ", HasValue: true}, valid: false},
		{name: "required set", cfg: registry.Config{Schema: model.FieldSchema{Required: true}, Value: 3, HasValue: true}, valid: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			child, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			editor := child.(*Editor)
			if got := editor.Validate(); got != tc.valid {
				t.Fatalf("validate: want %v, got %v (errors=%v)", tc.valid, got, editor.Errors())
			}
			if !tc.valid && len(editor.Errors()) != 1 {
				t.Fatalf("want one error, got %v", editor.Errors())
			}
		})
	}
}

func TestRegister(t *testing.T) {
	reg := registry.New()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, name := range []string{model.TypeString, model.TypeNumber, model.TypeBoolean} {
		if !reg.Has(name) {
			t.Fatalf("missing %q", name)
		}
	}
}
