package session

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/internal/prompt"
	"github.com/goliatone/go-formlist/internal/scalar"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/list"
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

// scriptDriver answers prompts from fixed queues. Selects are given by option
// label so scripts read like the menu the user sees.
type scriptDriver struct {
	t        *testing.T
	selects  []string
	inputs   []string
	confirms []bool
	infos    []string
}

func (d *scriptDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt %q", cfg.Message)
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt %q", cfg.Message)
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, fmt.Errorf("unexpected select prompt %q", cfg.Message)
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	idx := prompt.IndexOf(cfg.Options, answer)
	if idx < 0 {
		d.t.Fatalf("option %q not offered in %q: %v", answer, cfg.Message, cfg.Options)
	}
	return idx, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptDriver) saw(msg string) bool {
	for _, info := range d.infos {
		if strings.Contains(info, msg) {
			return true
		}
	}
	return false
}

func newController(t *testing.T, f *form.Form, schema model.FieldSchema) *list.Controller {
	t.Helper()
	reg := registry.New()
	if err := scalar.Register(reg); err != nil {
		t.Fatalf("register scalar: %v", err)
	}
	if err := list.Register(reg); err != nil {
		t.Fatalf("register list: %v", err)
	}
	ctrl, err := f.List(schema, list.WithRegistry(reg))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	f.Start()
	return ctrl
}

func tagSchema() model.FieldSchema {
	return model.FieldSchema{
		Name:   "tags",
		Label:  "Tags",
		Entity: "tag",
		Type:   model.TypeList,
		Min:    1,
		Max:    2,
		Field:  &model.FieldSchema{Label: "Tag", Type: model.TypeString, Required: true},
	}
}

func TestEdit_AddMoveRemove(t *testing.T) {
	f := form.New(map[string]any{"tags": []any{"a"}})
	ctrl := newController(t, f, tagSchema())

	driver := &scriptDriver{
		t: t,
		selects: []string{
			actionAdd,
			actionAdd,
			actionMove, "2: b", "1",
			actionRemove, "2: a",
			actionValidate,
			actionDone,
		},
		inputs: []string{"b"},
	}
	if err := New(driver).Edit(context.Background(), ctrl); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if diff := cmp.Diff(map[string]any{"tags": []any{"b"}}, f.Snapshot()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !driver.saw("Tags allows at most 2 tags.") {
		t.Fatalf("capacity message not shown: %v", driver.infos)
	}
	if !driver.saw("valid") {
		t.Fatalf("validation result not shown: %v", driver.infos)
	}
	if len(driver.selects) != 0 || len(driver.inputs) != 0 {
		t.Fatalf("script not consumed: selects=%v inputs=%v", driver.selects, driver.inputs)
	}
}

func TestEdit_ValidateReportsListAndChildErrors(t *testing.T) {
	f := form.New(map[string]any{"tags": []any{" "}})
	ctrl := newController(t, f, func() model.FieldSchema {
		schema := tagSchema()
		schema.Min = 2
		return schema
	}())

	driver := &scriptDriver{t: t, selects: []string{actionValidate, actionDone}}
	if err := New(driver).Edit(context.Background(), ctrl); err != nil {
		t.Fatalf("edit: %v", err)
	}

	for _, want := range []string{"Tags requires at least 2 tags.", "1: Tag is required."} {
		if !driver.saw(want) {
			t.Fatalf("missing %q in %v", want, driver.infos)
		}
	}
}

func TestEdit_NestedListsAndNumbers(t *testing.T) {
	f := form.New(nil)
	schema := model.FieldSchema{
		Name:   "matrix",
		Label:  "Matrix",
		Entity: "row",
		Type:   model.TypeList,
		Field: &model.FieldSchema{
			Label:  "Row",
			Entity: "cell",
			Type:   model.TypeList,
			Field:  &model.FieldSchema{Type: model.TypeNumber},
		},
	}
	ctrl := newController(t, f, schema)

	driver := &scriptDriver{
		t: t,
		selects: []string{
			actionEdit, "1: 1 cell",
			actionEdit, "1: (empty)",
			actionDone,
			actionDone,
		},
		inputs: []string{"3.5"},
	}
	if err := New(driver).Edit(context.Background(), ctrl); err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := map[string]any{"matrix": []any{[]any{3.5}}}
	if diff := cmp.Diff(want, f.Snapshot()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit_NumberInputRejected(t *testing.T) {
	f := form.New(nil)
	schema := model.FieldSchema{
		Name:  "scores",
		Type:  model.TypeList,
		Field: &model.FieldSchema{Type: model.TypeNumber},
	}
	ctrl := newController(t, f, schema)

	driver := &scriptDriver{t: t, selects: []string{actionEdit, "1: (empty)"}, inputs: []string{"abc"}}
	if err := New(driver).Edit(context.Background(), ctrl); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestRender(t *testing.T) {
	values := map[string]any{"tags": []any{"a", "b"}}

	cases := []struct {
		format string
		want   string
	}{
		{format: FormatJSON, want: "{\n  \"tags\": [\n    \"a\",\n    \"b\"\n  ]\n}\n"},
		{format: FormatPretty, want: "tags:\n  - a\n  - b\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, values, tc.format); err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if err := Render(&bytes.Buffer{}, values, "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	if err := Describe(&buf, tagSchema()); err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := strings.Join([]string{
		"tags: list",
		"  label: Tags",
		"  entity: tag",
		"  min: 1",
		"  max: 2",
		"  initial: 1",
		"  (item): string",
		"    label: Tag",
		"    required: true",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("describe mismatch (-want +got):\n%s", diff)
	}
}
