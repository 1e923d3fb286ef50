package list

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-formlist/pkg/registry"
)

// Handle identifies a child for its whole lifetime, independent of its
// position. Widgets can use it to key rendered rows.
type Handle uuid.UUID

// String returns the canonical UUID form.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

func newHandle() Handle {
	return Handle(uuid.New())
}

// Item pairs a child with its handle.
type Item struct {
	Handle Handle
	Child  registry.Child
}

// Widget displays list items. AddItem is called once per child on initial
// attach, on every successful AddItem and for every existing child, in order,
// when the widget is swapped.
type Widget interface {
	AddItem(item Item)
}

// WidgetFunc adapts a function to Widget.
type WidgetFunc func(item Item)

// AddItem implements Widget.
func (fn WidgetFunc) AddItem(item Item) {
	fn(item)
}

// WidgetListener observes widget swaps.
type WidgetListener func(w Widget)

// Widget returns the current widget, or nil when none is attached.
func (c *Controller) Widget() Widget {
	return c.widget
}

// SetWidget swaps the rendering widget and notifies listeners. The controller
// installs a listener at construction that re-attaches every existing child
// to the new widget.
func (c *Controller) SetWidget(w Widget) {
	c.widget = w
	for _, listener := range c.widgetListeners {
		listener(w)
	}
}

// OnWidgetChange registers a listener invoked after every SetWidget.
func (c *Controller) OnWidgetChange(listener WidgetListener) {
	if listener == nil {
		return
	}
	c.widgetListeners = append(c.widgetListeners, listener)
}

func (c *Controller) reattach(w Widget) {
	if w == nil {
		return
	}
	for _, item := range c.Items() {
		w.AddItem(item)
	}
	c.logger.Debug("list: widget reattached", "field", c.schema.Name, "items", len(c.items))
}

func (c *Controller) attach(item Item) {
	if c.widget == nil {
		return
	}
	c.widget.AddItem(item)
}
