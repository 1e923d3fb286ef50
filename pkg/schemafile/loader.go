// Package schemafile loads field schemas from JSON, YAML and TOML documents.
// Every schema returned is normalised and validated with model.Validate.
package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/pkg/model"
)

// Format identifies a schema document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension. It returns "" for
// unknown extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}

// Parse decodes one schema. The format is taken from the source extension;
// when it is unknown JSON, YAML and TOML are tried in that order.
func Parse(data []byte, source string) (model.FieldSchema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.FieldSchema{}, fmt.Errorf("schemafile: %s is empty", source)
	}

	var (
		schema model.FieldSchema
		err    error
	)
	switch FormatFromPath(source) {
	case FormatJSON:
		schema, err = decode(FormatJSON, data)
	case FormatYAML:
		schema, err = decode(FormatYAML, data)
	case FormatTOML:
		schema, err = decode(FormatTOML, data)
	default:
		schema, err = sniff(data)
	}
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("schemafile: parse %s: %w", source, err)
	}

	schema.Normalize()
	if err := model.Validate(schema); err != nil {
		return model.FieldSchema{}, fmt.Errorf("schemafile: %s: %w", source, err)
	}
	return schema, nil
}

// LoadFile reads and parses the schema stored at path.
func LoadFile(path string) (model.FieldSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FieldSchema{}, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Store holds schemas keyed by name.
type Store struct {
	schemas map[string]model.FieldSchema
	sources map[string]string
}

// LoadFS walks fsys and parses every .json, .yaml, .yml and .toml file. Two
// files declaring the same schema name are an error. A nil fsys yields an
// empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		schemas: make(map[string]model.FieldSchema),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || FormatFromPath(path) == "" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		schema, err := Parse(data, path)
		if err != nil {
			return err
		}
		if existing, ok := store.sources[schema.Name]; ok {
			return fmt.Errorf("schemafile: duplicate schema %q (files %s and %s)", schema.Name, existing, path)
		}
		store.schemas[schema.Name] = schema
		store.sources[schema.Name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Schema returns a copy of the named schema.
func (s *Store) Schema(name string) (model.FieldSchema, bool) {
	if s == nil {
		return model.FieldSchema{}, false
	}
	schema, ok := s.schemas[strings.TrimSpace(name)]
	if !ok {
		return model.FieldSchema{}, false
	}
	return schema.Clone(), true
}

// Source returns the file a schema was loaded from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[strings.TrimSpace(name)]
}

// Names returns the loaded schema names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds no schemas.
func (s *Store) Empty() bool {
	return s == nil || len(s.schemas) == 0
}

func decode(format Format, data []byte) (model.FieldSchema, error) {
	var schema model.FieldSchema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return model.FieldSchema{}, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return model.FieldSchema{}, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &schema); err != nil {
			return model.FieldSchema{}, err
		}
	default:
		return model.FieldSchema{}, fmt.Errorf("unsupported format %q", format)
	}
	return schema, nil
}

func sniff(data []byte) (model.FieldSchema, error) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		if schema, err := decode(format, data); err == nil {
			return schema, nil
		}
	}
	return model.FieldSchema{}, fmt.Errorf("invalid JSON, YAML or TOML")
}
