package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlist/pkg/model"
)

// ErrComponentNotFound is returned when the requested component or property
// does not exist in the document.
var ErrComponentNotFound = errors.New("openapi: component not found")

// LoadComponent parses an OpenAPI document and converts one property of a
// component schema. When property is empty the component itself is converted
// and named after it. The result is validated before it is returned.
func LoadComponent(ctx context.Context, data []byte, component, property string) (model.FieldSchema, error) {
	if err := ctx.Err(); err != nil {
		return model.FieldSchema{}, err
	}
	if len(data) == 0 {
		return model.FieldSchema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return model.FieldSchema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}

	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return model.FieldSchema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}

	var field model.FieldSchema
	if property == "" {
		field, err = FromSchema(component, ref)
	} else {
		prop, ok := ref.Value.Properties[property]
		if !ok {
			return model.FieldSchema{}, fmt.Errorf("%w: %q has no property %q", ErrComponentNotFound, component, property)
		}
		field, err = FromSchema(property, prop)
		field.Required = slices.Contains(ref.Value.Required, property)
	}
	if err != nil {
		return model.FieldSchema{}, err
	}

	if err := model.Validate(field); err != nil {
		path := component
		if property != "" {
			path += "." + property
		}
		return model.FieldSchema{}, fmt.Errorf("openapi: %s: %w", path, err)
	}
	return field, nil
}
