// Package registry resolves child editor constructors by type name. A list
// controller receives a Registry at construction and asks it to build one
// editor per item, which keeps the name-based dispatch explicit and lets tests
// inject fakes.
package registry
