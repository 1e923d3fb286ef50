// Package i18n resolves the user-visible messages produced by list
// validation. Templates are looked up through an optional Translator and fall
// back to built-in English strings; placeholders are interpolated afterwards.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Message keys.
const (
	KeyListMax = "list.max"
	KeyListMin = "list.min"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("i18n: translator not configured")

// Translator resolves a message template for locale. Implementations return
// an error (or an empty string) when the key is unknown.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler picks the template used when translation fails.
// args carries a map with the "default" template and the interpolation
// params.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

var defaultTemplates = map[string]string{
	KeyListMax: "{label} allows at most {max} {entities}.",
	KeyListMin: "{label} requires at least {min} {entities}.",
}

// DefaultTemplate returns the built-in template for key.
func DefaultTemplate(key string) string {
	return defaultTemplates[key]
}

// Catalog formats messages for one locale.
type Catalog struct {
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithTranslator sets the translator used to resolve templates.
func WithTranslator(t Translator) Option {
	return func(c *Catalog) {
		c.translator = t
	}
}

// WithLocale sets the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(c *Catalog) {
		c.locale = strings.TrimSpace(locale)
	}
}

// WithMissingHandler overrides the fallback used when translation fails.
func WithMissingHandler(fn MissingTranslationHandler) Option {
	return func(c *Catalog) {
		if fn != nil {
			c.onMissing = fn
		}
	}
}

// NewCatalog builds a catalog. Without options it emits the English defaults.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{onMissing: missingTranslationDefault}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Locale reports the configured locale.
func (c *Catalog) Locale() string {
	if c == nil {
		return ""
	}
	return c.locale
}

// Format resolves key and interpolates params into the template. Params are
// referenced as {name}; unknown placeholders are left as-is.
func (c *Catalog) Format(key string, params map[string]any) string {
	if c == nil {
		c = NewCatalog()
	}
	template := c.template(key, params)
	return interpolate(template, params)
}

// MaxItems formats the message for a list holding more than max items.
func (c *Catalog) MaxItems(label, entity string, max int) string {
	return c.Format(KeyListMax, boundParams(label, entity, "max", max))
}

// MinItems formats the message for a list holding fewer than min items.
func (c *Catalog) MinItems(label, entity string, min int) string {
	return c.Format(KeyListMin, boundParams(label, entity, "min", min))
}

func (c *Catalog) template(key string, params map[string]any) string {
	fallback := defaultTemplates[key]
	args := []any{map[string]any{"default": fallback, "params": params}}
	if c.translator == nil {
		return c.onMissing(c.locale, key, args, ErrMissingTranslator)
	}
	result, err := c.translator.Translate(c.locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return c.onMissing(c.locale, key, args, err)
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		payload, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := payload["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}

func boundParams(label, entity, bound string, value int) map[string]any {
	entity = strings.TrimSpace(entity)
	entities := entity
	if value != 1 && entity != "" {
		entities = entity + "s"
	}
	return map[string]any{
		"label":    SanitizeLabel(label),
		"entity":   entity,
		"entities": entities,
		bound:      value,
	}
}

func interpolate(template string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", fmt.Sprint(params[key]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel strips markup from a label before it is interpolated into a
// message that widgets may display as HTML.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(labelPolicy.Sanitize(trimmed))
}
