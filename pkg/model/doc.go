// Package model defines the field schema consumed by list controllers and
// child editors. A FieldSchema is immutable once handed to a controller;
// loaders in pkg/schemafile and pkg/openapi produce normalised, validated
// schemas. Cardinality bounds (Min, Max, DefaultNum) treat 0 as unset.
package model
