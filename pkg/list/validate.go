package list

// Validate clears the displayed errors, validates every child and checks the
// cardinality bounds. Every child is visited even after a failure so nested
// errors are all surfaced. Max and Min are checked independently.
func (c *Controller) Validate() bool {
	c.ClearErrors()

	valid := true
	for _, item := range c.Items() {
		if !item.Child.Validate() {
			valid = false
		}
	}

	count := c.params.Len()
	label := c.schema.DisplayLabel()
	if c.schema.Max > 0 && count > c.schema.Max {
		c.SetError(c.catalog.MaxItems(label, c.Entity(), c.schema.Max))
		valid = false
	}
	if c.schema.Min > 0 && count < c.schema.Min {
		c.SetError(c.catalog.MinItems(label, c.Entity(), c.schema.Min))
		valid = false
	}

	c.logger.Debug("list: validated", "field", c.schema.Name, "items", count, "valid", valid)
	return valid
}
