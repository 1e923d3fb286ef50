package list

// Ready defers callback until it is safe to run. Until the ancestor's
// readiness signal fires the registration is forwarded to the parent. After
// that, callbacks registered while a child is being constructed are queued and
// run, in registration order, right after that construction completes; any
// other registration runs immediately.
func (c *Controller) Ready(callback func()) {
	if callback == nil {
		return
	}
	if !c.ancestor.Fired() {
		c.parent.Ready(callback)
		return
	}
	if c.pending != nil {
		c.pending.Subscribe(callback)
		return
	}
	callback()
}

// PendingReady returns the number of callbacks waiting on the construction in
// progress.
func (c *Controller) PendingReady() int {
	if c.pending == nil {
		return 0
	}
	return c.pending.Pending()
}
