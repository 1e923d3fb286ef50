package list

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/goliatone/go-formlist/pkg/element"
	"github.com/goliatone/go-formlist/pkg/event"
	"github.com/goliatone/go-formlist/pkg/i18n"
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

var (
	// ErrNoRegistry is returned by New when no registry is configured.
	ErrNoRegistry = errors.New("list: registry is required")
	// ErrNoChildSchema is returned by New when the schema has no child field.
	ErrNoChildSchema = errors.New("list: child field schema is required")
)

// SetValueFunc publishes the presence or absence of the parameter sequence to
// the owner. params is nil when nothing is left to persist.
type SetValueFunc func(schema model.FieldSchema, params *Parameters)

type entry struct {
	handle Handle
	child  registry.Child
}

// Controller manages the children of a repeatable field and keeps them
// index-aligned with the parameter sequence. It is not safe for concurrent
// use; every operation runs to completion synchronously.
type Controller struct {
	element.Base

	parent   registry.Parent
	schema   model.FieldSchema
	params   *Parameters
	setValue SetValueFunc

	items []entry
	index map[Handle]int

	// ancestor fires once the parent reports readiness. pending collects
	// callbacks registered while a child is under construction and fires when
	// the outermost construction completes.
	ancestor event.Once
	pending  *event.Once

	widget          Widget
	widgetListeners []WidgetListener

	opts     options
	registry *registry.Registry
	catalog  *i18n.Catalog
	logger   *slog.Logger
	removed  bool
}

// Ensure the controller can itself be a list item.
var _ registry.Child = (*Controller)(nil)

// New binds a controller to parent and creates the initial children: one per
// slot of params when it holds data, otherwise schema.InitialCount() children
// resolved to the child default. setValue may be nil. A nil parent behaves as
// an ancestor that is already ready.
func New(parent registry.Parent, schema model.FieldSchema, params *Parameters, setValue SetValueFunc, opts ...Option) (*Controller, error) {
	cfg := buildOptions(opts)
	if cfg.registry == nil {
		return nil, ErrNoRegistry
	}
	if schema.Field == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoChildSchema, schema.Name)
	}
	if setValue == nil {
		setValue = func(model.FieldSchema, *Parameters) {}
	}

	c := &Controller{
		parent:   parent,
		schema:   schema,
		setValue: setValue,
		index:    make(map[Handle]int),
		widget:   cfg.widget,
		opts:     cfg,
		registry: cfg.registry,
		catalog:  cfg.catalog,
		logger:   cfg.logger,
	}
	prefilled := params.Len() > 0
	if prefilled {
		c.params = params
	}

	if parent == nil {
		c.ancestor.Fire()
	} else {
		parent.Ready(c.ancestor.Fire)
	}
	c.OnWidgetChange(c.reattach)

	if err := c.initialize(); err != nil {
		c.release()
		if !prefilled && c.params != nil {
			c.params = nil
			c.setValue(c.schema, nil)
		}
		return nil, err
	}
	return c, nil
}

func (c *Controller) initialize() error {
	if c.params != nil {
		for i := 0; i < c.params.Len(); i++ {
			if err := c.createItem(i, nil, false); err != nil {
				return err
			}
		}
		c.logger.Debug("list: initialized from parameters", "field", c.schema.Name, "items", len(c.items))
		return nil
	}

	count := c.schema.InitialCount()
	for i := 0; i < count; i++ {
		if err := c.createItem(i, nil, false); err != nil {
			return err
		}
	}
	c.logger.Debug("list: initialized with defaults", "field", c.schema.Name, "items", count)
	return nil
}

// Schema returns the field schema the controller was built with.
func (c *Controller) Schema() model.FieldSchema {
	return c.schema
}

// Entity returns the singular noun used for items in messages.
func (c *Controller) Entity() string {
	return c.schema.EntityName()
}

// Len returns the number of live children.
func (c *Controller) Len() int {
	return len(c.items)
}

// Parameters returns the shared sequence, or nil when nothing is persisted.
func (c *Controller) Parameters() *Parameters {
	return c.params
}

// Value returns a copy of the persisted values, or nil when absent.
func (c *Controller) Value() []any {
	return c.params.Values()
}

// CanAdd reports whether AddItem would accept another item.
func (c *Controller) CanAdd() bool {
	return c.schema.Max <= 0 || len(c.items) < c.schema.Max
}

// Child returns the child at index i.
func (c *Controller) Child(i int) registry.Child {
	return c.items[i].child
}

// IndexOf returns the current position of the child identified by h.
func (c *Controller) IndexOf(h Handle) (int, bool) {
	idx, ok := c.index[h]
	return idx, ok
}

// Items returns a snapshot of the children with their handles, in order.
func (c *Controller) Items() []Item {
	out := make([]Item, len(c.items))
	for i, e := range c.items {
		out[i] = Item{Handle: e.handle, Child: e.child}
	}
	return out
}

// ForEachChild invokes task once per child in order. It iterates over a
// snapshot, so mutations made by task do not affect the traversal.
func (c *Controller) ForEachChild(task func(index int, child registry.Child)) {
	if task == nil {
		return
	}
	for i, item := range c.Items() {
		task(i, item.Child)
	}
}

// AddItem appends a child resolved to the stored or default value. It
// returns false without mutating anything when the list is at Max.
func (c *Controller) AddItem() (bool, error) {
	return c.addItem(nil, false)
}

// AddItemValue appends a child bound to value. It returns false without
// mutating anything when the list is at Max.
func (c *Controller) AddItemValue(value any) (bool, error) {
	return c.addItem(value, true)
}

func (c *Controller) addItem(value any, hasValue bool) (bool, error) {
	if !c.CanAdd() {
		c.logger.Debug("list: add refused at capacity", "field", c.schema.Name, "max", c.schema.Max)
		return false, nil
	}
	if err := c.createItem(len(c.items), value, hasValue); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveItem releases and removes the child at index along with its slot.
// index must satisfy 0 <= index < Len(); out-of-range indices panic. When the
// last item goes away the sequence becomes absent and the owner is notified.
func (c *Controller) RemoveItem(index int) {
	removed := c.items[index]
	removed.child.Remove()

	c.items = slices.Delete(c.items, index, index+1)
	delete(c.index, removed.handle)
	c.reindex(index, len(c.items))

	c.params.removeAt(index)
	if c.params.Len() == 0 {
		c.params = nil
		c.setValue(c.schema, nil)
	}
	c.logger.Debug("list: item removed", "field", c.schema.Name, "index", index, "items", len(c.items))
}

// RemoveAllItems releases every child and marks the sequence absent.
func (c *Controller) RemoveAllItems() {
	c.release()
	c.params = nil
	c.setValue(c.schema, nil)
	c.logger.Debug("list: all items removed", "field", c.schema.Name)
}

// MoveItem moves the child at current, and its slot, to next. Both indices
// must be valid positions; out-of-range indices panic. The sequence keeps its
// identity and length, so the owner is not notified.
func (c *Controller) MoveItem(current, next int) {
	moved := c.items[current]
	c.items = slices.Delete(c.items, current, current+1)
	c.items = slices.Insert(c.items, next, moved)
	c.params.move(current, next)
	c.reindex(min(current, next), max(current, next)+1)
	c.logger.Debug("list: item moved", "field", c.schema.Name, "from", current, "to", next)
}

// Remove releases every child and detaches the widget without persisting
// anything. It lets a controller be the child of another list.
func (c *Controller) Remove() {
	if c.removed {
		return
	}
	c.release()
	c.widget = nil
	c.widgetListeners = nil
	c.pending = nil
	c.removed = true
}

func (c *Controller) release() {
	for _, e := range c.items {
		e.child.Remove()
	}
	c.items = nil
	c.index = make(map[Handle]int)
}

// createItem builds the child for slot index, appending the slot when it does
// not exist yet. Resolution order: explicit value, stored non-nil value, child
// default, unset. A failed build restores exactly what this call changed.
func (c *Controller) createItem(index int, value any, hasValue bool) error {
	created := c.params == nil
	if created {
		c.params = &Parameters{}
		c.setValue(c.schema, c.params)
	}

	stored, hasStored := c.resolveValue(index, value, hasValue)
	undo := slot{index: index, appended: index >= c.params.Len()}
	if undo.appended {
		c.params.append(stored)
	} else {
		undo.previous = c.params.At(index)
		c.params.Set(index, stored)
	}

	handle := c.opts.handleFunc()
	c.index[handle] = index

	batch, owned := c.pending, c.pending == nil
	if owned {
		batch = &event.Once{}
		c.pending = batch
	}
	mark := batch.Pending()

	child, err := c.registry.Build(registry.Config{
		Host:     c,
		Schema:   *c.schema.Field,
		Value:    stored,
		HasValue: hasStored,
		SetValue: c.slotWriter(handle),
	})
	if err != nil {
		batch.Truncate(mark)
		if owned {
			c.pending = nil
		}
		delete(c.index, handle)
		c.restore(undo, created)
		return fmt.Errorf("list: build item %d of %q: %w", index, c.schema.Name, err)
	}

	item := entry{handle: handle, child: child}
	c.items = append(c.items, item)
	c.attach(Item{Handle: handle, Child: child})
	c.logger.Debug("list: item created", "field", c.schema.Name, "index", index, "handle", handle.String())

	if owned {
		batch.Fire()
		if c.pending == batch {
			c.pending = nil
		}
	}
	return nil
}

// resolveValue treats a nil stored slot as absent so it falls through to the
// child default.
func (c *Controller) resolveValue(index int, value any, hasValue bool) (any, bool) {
	if hasValue {
		return value, true
	}
	if index < c.params.Len() {
		if stored := c.params.At(index); stored != nil {
			return stored, true
		}
	}
	if c.schema.Field.Default != nil {
		return c.schema.Field.Default, true
	}
	return nil, false
}

// slot records the sequence change made for one child so it can be undone.
type slot struct {
	index    int
	appended bool
	previous any
}

// restore undoes the slot change of a failed build. Slots that existed before
// the build keep their value; the sequence is only unpublished when this build
// created it.
func (c *Controller) restore(undo slot, created bool) {
	if undo.appended {
		c.params.removeAt(undo.index)
	} else {
		c.params.Set(undo.index, undo.previous)
	}
	if created && c.params.Len() == 0 {
		c.params = nil
		c.setValue(c.schema, nil)
	}
}

// slotWriter returns the persistence callback for the child identified by h.
// It looks up the child's current position on every write.
func (c *Controller) slotWriter(h Handle) registry.SetValueFunc {
	return func(_ model.FieldSchema, value any) {
		idx, ok := c.index[h]
		if !ok || c.params == nil || idx >= c.params.Len() {
			c.logger.Debug("list: dropped write from detached item", "field", c.schema.Name, "handle", h.String())
			return
		}
		c.params.Set(idx, value)
	}
}

func (c *Controller) reindex(from, to int) {
	for i := from; i < to && i < len(c.items); i++ {
		c.index[c.items[i].handle] = i
	}
}
