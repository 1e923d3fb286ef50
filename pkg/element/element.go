// Package element provides the error-display capability shared by form
// editors. Editors embed Base to expose SetError and ClearErrors.
package element

import "strings"

// Base records the messages an editor currently displays. The zero value is
// ready to use.
type Base struct {
	errors []string
}

// SetError records a message. Blank and duplicate messages are ignored so
// repeated validation passes do not stack the same error.
func (b *Base) SetError(message string) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return
	}
	for _, existing := range b.errors {
		if existing == trimmed {
			return
		}
	}
	b.errors = append(b.errors, trimmed)
}

// ClearErrors drops every recorded message.
func (b *Base) ClearErrors() {
	b.errors = nil
}

// Errors returns a copy of the recorded messages in insertion order.
func (b *Base) Errors() []string {
	if len(b.errors) == 0 {
		return nil
	}
	return append([]string(nil), b.errors...)
}

// HasErrors reports whether any message is recorded.
func (b *Base) HasErrors() bool {
	return len(b.errors) > 0
}
