package list

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/i18n"
)

func TestValidate_MinViolation(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Min = 2

	ctrl, err := New(nil, schema, NewParameters("one"), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if ctrl.Validate() {
		t.Fatalf("expected validation to fail below min")
	}
	want := []string{"Tags requires at least 2 items."}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MaxViolation(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Max = 2
	schema.Entity = "tag"

	ctrl, err := New(nil, schema, NewParameters(1, 2, 3), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if ctrl.Validate() {
		t.Fatalf("expected validation to fail above max")
	}
	want := []string{"Tags allows at most 2 tags."}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MinCountsAbsentSequenceAsZero(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Min = 1

	ctrl, err := New(nil, schema, nil, nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctrl.RemoveAllItems()

	if ctrl.Validate() {
		t.Fatalf("expected empty list to fail min")
	}
	if len(ctrl.Errors()) != 1 {
		t.Fatalf("want one error, got %v", ctrl.Errors())
	}
}

func TestValidate_VisitsEveryChild(t *testing.T) {
	fx := newFixture(t)
	fx.valid = false

	ctrl, err := New(nil, textList("tags"), NewParameters(1, 2, 3), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if ctrl.Validate() {
		t.Fatalf("invalid children must fail validation")
	}
	for _, child := range fx.children {
		if child.checked != 1 {
			t.Fatalf("child %s validated %d times", child.name, child.checked)
		}
	}
	if ctrl.HasErrors() {
		t.Fatalf("child failures are reported by the children, got %v", ctrl.Errors())
	}
}

func TestValidate_BoundErrorRegardlessOfChildren(t *testing.T) {
	fx := newFixture(t)
	fx.valid = false
	schema := textList("tags")
	schema.Min = 3

	ctrl, err := New(nil, schema, NewParameters(1), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if ctrl.Validate() {
		t.Fatalf("expected failure")
	}
	if len(ctrl.Errors()) != 1 {
		t.Fatalf("want exactly one bound message, got %v", ctrl.Errors())
	}
}

func TestValidate_ClearsPreviousErrors(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Min = 2

	ctrl, err := New(nil, schema, NewParameters("one"), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctrl.Validate()

	if ok, err := ctrl.AddItemValue("two"); err != nil || !ok {
		t.Fatalf("add: ok=%v err=%v", ok, err)
	}
	if !ctrl.Validate() {
		t.Fatalf("expected valid list, errors=%v", ctrl.Errors())
	}
	if ctrl.HasErrors() {
		t.Fatalf("stale errors kept: %v", ctrl.Errors())
	}
}

func TestValidate_BothBoundsWhenMinAboveMax(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Min = 5
	schema.Max = 2

	ctrl, err := New(nil, schema, NewParameters(1, 2, 3), nil, WithRegistry(fx.reg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if ctrl.Validate() {
		t.Fatalf("expected failure")
	}
	if len(ctrl.Errors()) != 2 {
		t.Fatalf("want both bound messages, got %v", ctrl.Errors())
	}
}

func TestValidate_UsesTranslator(t *testing.T) {
	fx := newFixture(t)
	schema := textList("tags")
	schema.Min = 2

	translator := i18n.TranslatorFunc(func(locale, key string, args ...any) (string, error) {
		if locale == "fr" && key == i18n.KeyListMin {
			return "{label} : au moins {min}", nil
		}
		return "", nil
	})
	ctrl, err := New(nil, schema, NewParameters(1), nil,
		WithRegistry(fx.reg),
		WithTranslator(translator),
		WithLocale("fr"),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctrl.Validate()
	if diff := cmp.Diff([]string{"Tags : au moins 2"}, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
