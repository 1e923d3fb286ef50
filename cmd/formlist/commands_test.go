package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formlist/internal/prompt"
	"github.com/goliatone/go-formlist/pkg/testsupport"
)

const tagsSchema = `
name: tags
label: Tags
entity: tag
type: list
max: 3
defaultNum: 2
field:
  type: string
  default: draft
`

type doneDriver struct {
	infos []string
}

func (d *doneDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", nil
}

func (d *doneDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *doneDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return prompt.IndexOf(cfg.Options, "Done"), nil
}

func (d *doneDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, driver prompt.Driver, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func(io.Writer) prompt.Driver { return driver })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInspect_PrintsSchemaAndDefaults(t *testing.T) {
	schema := writeFile(t, "tags.yaml", tagsSchema)

	out, err := execute(t, &doneDriver{}, "inspect", "--schema", schema)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"tags: list", "initial: 2", "\"draft\",\n    \"draft\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspect_Golden(t *testing.T) {
	schema := filepath.Join("testdata", "cover_images.toml")
	golden := filepath.Join("testdata", "inspect_cover_images.golden")

	out, err := execute(t, &doneDriver{}, "inspect", "--schema", schema)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, golden, []byte(out)) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), out); diff != "" {
		t.Fatalf("inspect output mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit_PrefillRoundTrip(t *testing.T) {
	schema := writeFile(t, "tags.yaml", tagsSchema)
	values := writeFile(t, "values.json", `{"tags": ["go", "cli"], "title": "Intro"}`)
	driver := &doneDriver{}

	out, err := execute(t, driver, "edit", "--schema", schema, "--values", values, "--format", "pretty")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	want := "tags:\n  - go\n  - cli\ntitle: Intro\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if len(driver.infos) == 0 || !strings.Contains(driver.infos[0], "go") {
		t.Fatalf("rows not shown: %v", driver.infos)
	}
}

func TestEdit_RejectsNonListSchema(t *testing.T) {
	schema := writeFile(t, "title.yaml", "name: title\ntype: string\n")
	if _, err := execute(t, &doneDriver{}, "edit", "--schema", schema); err == nil {
		t.Fatalf("expected error for non-list schema")
	}
}

func TestEdit_RequiresSchemaFlag(t *testing.T) {
	if _, err := execute(t, &doneDriver{}, "edit"); err == nil {
		t.Fatalf("expected error without --schema")
	}
}

func TestInspect_FromOpenAPIComponent(t *testing.T) {
	doc := filepath.Join("testdata", "articles.yaml")

	out, err := execute(t, &doneDriver{}, "inspect", "--openapi", doc, "--component", "Article.keywords")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"keywords: list", "initial: 2", "\"draft\",\n    \"draft\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspect_OpenAPISourceErrors(t *testing.T) {
	doc := filepath.Join("testdata", "articles.yaml")
	schema := writeFile(t, "tags.yaml", tagsSchema)

	cases := []struct {
		name string
		args []string
	}{
		{name: "missing component flag", args: []string{"inspect", "--openapi", doc}},
		{name: "unknown component", args: []string{"inspect", "--openapi", doc, "--component", "Missing"}},
		{name: "non list property", args: []string{"inspect", "--openapi", doc, "--component", "Article.headline"}},
		{name: "both sources", args: []string{"inspect", "--schema", schema, "--openapi", doc, "--component", "Article.keywords"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, &doneDriver{}, tc.args...); err == nil {
				t.Fatalf("expected error for %v", tc.args)
			}
		})
	}
}
