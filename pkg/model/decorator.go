package model

// Decorator enriches a field schema after it has been decoded from its
// source.
type Decorator interface {
	Decorate(*FieldSchema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FieldSchema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *FieldSchema) error {
	return fn(schema)
}

// Decorate applies decorators to schema and every nested child schema, parent
// first. It stops at the first error.
func Decorate(schema *FieldSchema, decorators ...Decorator) error {
	for node := schema; node != nil; node = node.Field {
		for _, decorator := range decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(node); err != nil {
				return err
			}
		}
	}
	return nil
}
