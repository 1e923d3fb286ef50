package list

import (
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

// Constructor returns a registry constructor that builds a nested list
// controller for child schemas of type "list". A nested controller inherits
// the registry, catalog, logger and handle source of its host controller;
// opts are applied on top.
func Constructor(reg *registry.Registry, opts ...Option) registry.Constructor {
	return func(cfg registry.Config) (registry.Child, error) {
		var inherited []Option
		if host, ok := cfg.Host.(*Controller); ok {
			inherited = host.opts.childOptions()
		}
		inherited = append(inherited, WithRegistry(reg))
		inherited = append(inherited, opts...)

		var params *Parameters
		var wrapped bool
		if cfg.HasValue {
			params, wrapped = asParameters(cfg.Value)
		}

		publish := func(schema model.FieldSchema, p *Parameters) {
			if cfg.SetValue == nil {
				return
			}
			if p == nil {
				cfg.SetValue(schema, nil)
				return
			}
			cfg.SetValue(schema, p)
		}
		// A plain slice was copied into a new sequence; store the shared
		// pointer in the host slot so in-place edits reach the owner.
		if wrapped {
			publish(cfg.Schema, params)
		}

		ctrl, err := New(cfg.Host, cfg.Schema, params, publish, inherited...)
		if err != nil {
			return nil, err
		}
		return ctrl, nil
	}
}

// Register adds the nested list constructor to reg under model.TypeList.
func Register(reg *registry.Registry, opts ...Option) error {
	return reg.Register(model.TypeList, Constructor(reg, opts...))
}
