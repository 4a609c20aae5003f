package model

// Decorator enriches a form definition after it has been taken from the
// catalog, for example to apply label overrides from a UI overlay.
type Decorator interface {
	Decorate(*Form) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Form) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *Form) error {
	return fn(form)
}
