package session

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/pkg/model"
)

// Output formats accepted by Render.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Render writes values to w as indented JSON or, for FormatPretty, YAML.
func Render(w io.Writer, values map[string]any, format string) error {
	if values == nil {
		values = map[string]any{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		payload, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("session: encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	case FormatPretty:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return fmt.Errorf("session: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("session: unknown format %q", format)
	}
}

// Describe writes a summary of schema, recursing into nested lists.
func Describe(w io.Writer, schema model.FieldSchema) error {
	return describe(w, schema, 0)
}

func describe(w io.Writer, schema model.FieldSchema, depth int) error {
	indent := strings.Repeat("  ", depth)
	name := schema.Name
	if name == "" {
		name = "(item)"
	}
	if _, err := fmt.Fprintf(w, "%s%s: %s\n", indent, name, schema.Type); err != nil {
		return err
	}
	if label := schema.DisplayLabel(); label != "" && label != schema.Name {
		fmt.Fprintf(w, "%s  label: %s\n", indent, label)
	}
	if schema.Required {
		fmt.Fprintf(w, "%s  required: true\n", indent)
	}
	if schema.Default != nil {
		fmt.Fprintf(w, "%s  default: %v\n", indent, schema.Default)
	}
	if !schema.IsList() {
		return nil
	}

	fmt.Fprintf(w, "%s  entity: %s\n", indent, schema.EntityName())
	fmt.Fprintf(w, "%s  min: %s\n", indent, boundText(schema.Min))
	fmt.Fprintf(w, "%s  max: %s\n", indent, boundText(schema.Max))
	fmt.Fprintf(w, "%s  initial: %d\n", indent, schema.InitialCount())
	if schema.Field == nil {
		return nil
	}
	return describe(w, *schema.Field, depth+1)
}

func boundText(value int) string {
	if value <= 0 {
		return "unset"
	}
	return fmt.Sprint(value)
}
