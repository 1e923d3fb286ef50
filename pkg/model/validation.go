package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var schemaValidate *validator.Validate

func init() {
	schemaValidate = validator.New()
	schemaValidate.RegisterStructValidation(validateListBounds, FieldSchema{})
}

// Validate checks a schema tree for authoring mistakes: a missing top-level
// name, negative bounds, list fields without a child schema, and Min above
// Max. Messages use dotted paths to locate the offending node.
func Validate(schema FieldSchema) error {
	if strings.TrimSpace(schema.Name) == "" {
		return errors.New("model: schema name is required")
	}
	if err := schemaValidate.Struct(schema); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("model: schema %q: %s", schema.Name, describe(fieldErrs[0]))
		}
		return fmt.Errorf("model: schema %q: %w", schema.Name, err)
	}
	return nil
}

func validateListBounds(sl validator.StructLevel) {
	schema, ok := sl.Current().Interface().(FieldSchema)
	if !ok {
		return
	}
	if schema.IsList() && schema.Field == nil {
		sl.ReportError(schema.Field, "Field", "field", "listitem", "")
	}
	if schema.Min > 0 && schema.Max > 0 && schema.Min > schema.Max {
		sl.ReportError(schema.Min, "Min", "min", "ltemax", "")
	}
}

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must not be negative", path)
	case "listitem":
		return fmt.Sprintf("%s is required for list fields", path)
	case "ltemax":
		return fmt.Sprintf("%s must not exceed Max", path)
	default:
		return fmt.Sprintf("%s failed %q", path, fe.Tag())
	}
}
