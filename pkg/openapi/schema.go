package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlist/pkg/model"
)

const (
	extensionEntity     = "x-entity"
	extensionDefaultNum = "x-default-num"
	extensionWidget     = "x-widget"
)

// ErrUnsupportedType is returned when a schema has no type the list editor
// can map and no x-widget override.
var ErrUnsupportedType = errors.New("openapi: unsupported schema type")

// FromSchema converts ref into a field schema named name. Arrays become list
// fields with their items converted recursively.
func FromSchema(name string, ref *openapi3.SchemaRef) (model.FieldSchema, error) {
	field, err := convert(name, ref)
	if err != nil {
		return model.FieldSchema{}, err
	}
	field.Normalize()
	return field, nil
}

func convert(name string, ref *openapi3.SchemaRef) (model.FieldSchema, error) {
	if ref == nil || ref.Value == nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: schema is empty", displayName(name))
	}
	src := ref.Value

	field := model.FieldSchema{
		Name:    name,
		Label:   src.Title,
		Default: src.Default,
	}

	widget, err := stringExtension(src.Extensions, extensionWidget)
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: %w", displayName(name), err)
	}
	field.Type = widget
	if field.Type == "" {
		field.Type = fieldType(src.Type)
	}
	if field.Type == "" {
		return model.FieldSchema{}, fmt.Errorf("%w: %s: %q", ErrUnsupportedType, displayName(name), firstSchemaType(src.Type))
	}

	if !src.Type.Is(openapi3.TypeArray) {
		return field, nil
	}

	field.Type = model.TypeList
	if field.Entity, err = stringExtension(src.Extensions, extensionEntity); err != nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: %w", displayName(name), err)
	}
	if field.DefaultNum, err = intExtension(src.Extensions, extensionDefaultNum); err != nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: %w", displayName(name), err)
	}
	if field.Min, err = bound(src.MinItems); err != nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: minItems: %w", displayName(name), err)
	}
	if src.MaxItems != nil {
		if field.Max, err = bound(*src.MaxItems); err != nil {
			return model.FieldSchema{}, fmt.Errorf("openapi: %s: maxItems: %w", displayName(name), err)
		}
	}
	if src.Items == nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: array schema has no items", displayName(name))
	}

	child, err := convert(name+"[]", src.Items)
	if err != nil {
		return model.FieldSchema{}, err
	}
	child.Name = ""
	field.Field = &child
	return field, nil
}

func fieldType(types *openapi3.Types) string {
	switch {
	case types.Is(openapi3.TypeArray):
		return model.TypeList
	case types.Is(openapi3.TypeString):
		return model.TypeString
	case types.Is(openapi3.TypeNumber), types.Is(openapi3.TypeInteger):
		return model.TypeNumber
	case types.Is(openapi3.TypeBoolean):
		return model.TypeBoolean
	default:
		return ""
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

func bound(value uint64) (int, error) {
	if value > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of range", value)
	}
	return int(value), nil
}

func stringExtension(ext map[string]any, key string) (string, error) {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return strings.TrimSpace(value), nil
}

func intExtension(ext map[string]any, key string) (int, error) {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return 0, nil
	}
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint64:
		value = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		value = parsed
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, raw)
	}
	if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %v", key, raw)
	}
	return int(value), nil
}

func displayName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}
