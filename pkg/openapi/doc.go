// Package openapi converts OpenAPI 3 array schemas into list field schemas.
//
// Array keywords map onto the list bounds (minItems, maxItems) and items
// becomes the child field. The vendor extensions x-entity, x-default-num and
// x-widget carry the list metadata OpenAPI has no keyword for. Documents are
// loaded with kin-openapi so local references resolve before conversion.
package openapi
