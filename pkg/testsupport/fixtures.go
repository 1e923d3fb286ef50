// Package testsupport holds fixture and golden-file helpers shared by tests.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/schemafile"
)

// MustLoadSchema reads a schema fixture through the schemafile loader.
func MustLoadSchema(t *testing.T, path string) model.FieldSchema {
	t.Helper()

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return schema
}

// LoadSchema returns a schema fixture without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadSchema(path string) (model.FieldSchema, error) {
	if path == "" {
		return model.FieldSchema{}, errors.New("testsupport: schema path is required")
	}
	schema, err := schemafile.LoadFile(path)
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("testsupport: %w", err)
	}
	return schema, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
