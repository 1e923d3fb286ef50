// Package event implements the one-shot readiness signal used to defer work
// until an ancestor form has finished initialising.
package event

// Once is a one-shot event. Handlers subscribed before Fire are queued and run
// in subscription order when Fire is called; handlers subscribed afterwards
// run immediately. The zero value is ready to use. Once is not safe for
// concurrent use.
type Once struct {
	fired   bool
	firing  bool
	pending []func()
}

// Subscribe registers fn. Nil handlers are ignored.
func (o *Once) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	if o.fired && !o.firing {
		fn()
		return
	}
	o.pending = append(o.pending, fn)
}

// Fire runs every queued handler exactly once. Handlers subscribed while Fire
// is draining the queue are appended and run in the same pass. Subsequent
// calls are no-ops.
func (o *Once) Fire() {
	if o.fired {
		return
	}
	o.fired = true
	o.firing = true
	for len(o.pending) > 0 {
		next := o.pending[0]
		o.pending = o.pending[1:]
		next()
	}
	o.pending = nil
	o.firing = false
}

// Fired reports whether Fire has been called.
func (o *Once) Fired() bool {
	return o.fired
}

// Pending returns the number of handlers waiting for Fire.
func (o *Once) Pending() int {
	return len(o.pending)
}

// Truncate drops every queued handler after the first n. It lets a caller
// discard handlers registered by work that was abandoned.
func (o *Once) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(o.pending) {
		clear(o.pending[n:])
		o.pending = o.pending[:n]
	}
}
