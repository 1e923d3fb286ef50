package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/internal/prompt"
	"github.com/goliatone/go-formlist/internal/scalar"
	"github.com/goliatone/go-formlist/internal/session"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/list"
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/registry"
	"github.com/goliatone/go-formlist/pkg/schemafile"
)

type driverFactory func(out io.Writer) prompt.Driver

type cliFlags struct {
	schema    string
	openapi   string
	component string
	values    string
	format    string
	verbose   bool
}

func newRootCmd(drivers driverFactory) *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:          "formlist",
		Short:        "Edit repeatable form fields from a schema file",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log list mutations to stderr")
	root.PersistentFlags().StringVar(&flags.schema, "schema", "", "schema file (json, yaml or toml)")
	root.PersistentFlags().StringVar(&flags.openapi, "openapi", "", "OpenAPI document to read the schema from")
	root.PersistentFlags().StringVar(&flags.component, "component", "", "component schema in the OpenAPI document, as NAME or NAME.PROPERTY")
	root.MarkFlagsMutuallyExclusive("schema", "openapi")
	root.MarkFlagsRequiredTogether("openapi", "component")

	edit := &cobra.Command{
		Use:   "edit",
		Short: "Interactively add, edit, remove and reorder list items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdit(cmd, flags, drivers(cmd.OutOrStdout()))
		},
	}
	edit.Flags().StringVar(&flags.values, "values", "", "prefill values file (json or yaml)")
	edit.Flags().StringVar(&flags.format, "format", session.FormatJSON, "output format: json or pretty")

	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Print the schema and the values a new list starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, flags)
		},
	}
	inspect.Flags().StringVar(&flags.format, "format", session.FormatJSON, "output format: json or pretty")

	root.AddCommand(edit, inspect)
	return root
}

func runEdit(cmd *cobra.Command, flags *cliFlags, driver prompt.Driver) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)

	schema, err := loadListSchema(cmd.Context(), flags)
	if err != nil {
		return err
	}
	prefill, err := loadValues(flags.values)
	if err != nil {
		return err
	}

	f := form.New(prefill, form.WithLogger(logger))
	ctrl, err := buildList(f, schema, logger)
	if err != nil {
		return err
	}
	f.Start()

	sess := session.New(driver, session.WithLogger(logger))
	if err := sess.Edit(cmd.Context(), ctrl); err != nil {
		return err
	}
	if !ctrl.Validate() {
		logger.Warn("formlist: values do not satisfy the schema", "field", schema.Name, "errors", ctrl.Errors())
	}
	return session.Render(cmd.OutOrStdout(), f.Snapshot(), flags.format)
}

func runInspect(cmd *cobra.Command, flags *cliFlags) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)

	schema, err := loadListSchema(cmd.Context(), flags)
	if err != nil {
		return err
	}
	if err := session.Describe(cmd.OutOrStdout(), schema); err != nil {
		return err
	}

	f := form.New(nil, form.WithLogger(logger))
	if _, err := buildList(f, schema, logger); err != nil {
		return err
	}
	f.Start()
	return session.Render(cmd.OutOrStdout(), f.Snapshot(), flags.format)
}

func buildList(f *form.Form, schema model.FieldSchema, logger *slog.Logger) (*list.Controller, error) {
	reg := registry.New()
	if err := scalar.Register(reg); err != nil {
		return nil, err
	}

	widget := list.WidgetFunc(func(item list.Item) {
		logger.Debug("formlist: row attached", "handle", item.Handle.String(), "child", fmt.Sprintf("%T", item.Child))
	})
	base := []list.Option{
		list.WithRegistry(reg),
		list.WithLogger(logger),
		list.WithWidget(widget),
	}
	if err := list.Register(reg, base...); err != nil {
		return nil, err
	}
	return f.List(schema, base...)
}

var errNoSchemaSource = errors.New("formlist: one of --schema or --openapi is required")

func loadListSchema(ctx context.Context, flags *cliFlags) (model.FieldSchema, error) {
	var (
		schema model.FieldSchema
		err    error
	)
	switch {
	case strings.TrimSpace(flags.schema) != "":
		schema, err = schemafile.LoadFile(flags.schema)
	case strings.TrimSpace(flags.openapi) != "":
		schema, err = loadOpenAPISchema(ctx, flags.openapi, flags.component)
	default:
		return model.FieldSchema{}, errNoSchemaSource
	}
	if err != nil {
		return model.FieldSchema{}, err
	}
	if !schema.IsList() {
		return model.FieldSchema{}, fmt.Errorf("formlist: schema %q is %q, not a list", schema.Name, schema.Type)
	}
	if err := model.Decorate(&schema, model.LabelFromName(nil)); err != nil {
		return model.FieldSchema{}, fmt.Errorf("formlist: decorate %q: %w", schema.Name, err)
	}
	return schema, nil
}

// loadOpenAPISchema converts a component of an OpenAPI document. ref is
// either a component name or component.property.
func loadOpenAPISchema(ctx context.Context, path, ref string) (model.FieldSchema, error) {
	component, property, _ := strings.Cut(strings.TrimSpace(ref), ".")
	if component == "" {
		return model.FieldSchema{}, errors.New("formlist: --component is required with --openapi")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("formlist: read openapi %s: %w", filepath.Base(path), err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return openapi.LoadComponent(ctx, data, component, property)
}

// loadValues reads a prefill object. YAML is a superset of JSON so one decoder
// covers both.
func loadValues(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formlist: read values %s: %w", filepath.Base(path), err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("formlist: decode values %s: %w", filepath.Base(path), err)
	}
	return values, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
