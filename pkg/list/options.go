package list

import (
	"log/slog"

	"github.com/goliatone/go-formlist/pkg/i18n"
	"github.com/goliatone/go-formlist/pkg/registry"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	registry   *registry.Registry
	widget     Widget
	catalog    *i18n.Catalog
	i18nOpts   []i18n.Option
	logger     *slog.Logger
	handleFunc func() Handle
}

// WithRegistry sets the registry used to build children. Required.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithWidget attaches a widget before the initial items are created.
func WithWidget(w Widget) Option {
	return func(o *options) {
		o.widget = w
	}
}

// WithCatalog sets the message catalog used for cardinality errors.
func WithCatalog(catalog *i18n.Catalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithTranslator builds the message catalog around t. Ignored when
// WithCatalog is also supplied.
func WithTranslator(t i18n.Translator) Option {
	return func(o *options) {
		o.i18nOpts = append(o.i18nOpts, i18n.WithTranslator(t))
	}
}

// WithLocale sets the locale passed to the translator. Ignored when
// WithCatalog is also supplied.
func WithLocale(locale string) Option {
	return func(o *options) {
		o.i18nOpts = append(o.i18nOpts, i18n.WithLocale(locale))
	}
}

// WithLogger routes debug records for structural mutations to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHandleFunc overrides handle generation, mainly for deterministic tests.
func WithHandleFunc(fn func() Handle) Option {
	return func(o *options) {
		if fn != nil {
			o.handleFunc = fn
		}
	}
}

func buildOptions(opts []Option) options {
	cfg := options{
		logger:     slog.New(slog.DiscardHandler),
		handleFunc: newHandle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.catalog == nil {
		cfg.catalog = i18n.NewCatalog(cfg.i18nOpts...)
	}
	return cfg
}

// childOptions returns the options a nested list controller inherits.
func (o options) childOptions() []Option {
	return []Option{
		WithRegistry(o.registry),
		WithCatalog(o.catalog),
		WithLogger(o.logger),
		WithHandleFunc(o.handleFunc),
	}
}
