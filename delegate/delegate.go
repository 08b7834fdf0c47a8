// Package delegate forwards operations from a handle type to the provider value
// it holds, wrapping each result according to an explicit Strategy.
package delegate

import "fmt"

// Strategy determines what a forwarded operation does with the provider's result
type Strategy int

const (
	// Passthrough returns the provider's result unmodified
	Passthrough Strategy = iota
	// CloneReplace clones the handle and stores the provider's result in the clone
	CloneReplace
	// Custom passes the handle and the provider's result to a wrap function
	Custom
)

// String returns a textual representation of this Strategy
func (s Strategy) String() string {
	switch s {
	case Passthrough:
		return "passthrough"
	case CloneReplace:
		return "clone-replace"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Adapter describes a handle type H which holds a provider P
type Adapter[H any, P any] struct {
	Get     func(h H) P      // Get reads the provider held by a handle
	Clone   func(h H) H      // Clone copies a handle
	Replace func(h H, p P) H // Replace stores a new provider in a handle, returning it
}

// Rule describes how the result R of a forwarded operation becomes its output O
type Rule[H any, R any, O any] struct {
	Strategy Strategy
	Wrap     func(h H, raw R) (O, error) // used by Custom
}

// Raw returns provider results unmodified
func Raw[H any, R any]() Rule[H, R, R] {
	return Rule[H, R, R]{Strategy: Passthrough}
}

// Replace returns a clone of the handle holding the provider's result
func Replace[H any, P any]() Rule[H, P, H] {
	return Rule[H, P, H]{Strategy: CloneReplace}
}

// With passes the handle and the provider's result to wrap
func With[H any, R any, O any](wrap func(h H, raw R) (O, error)) Rule[H, R, O] {
	return Rule[H, R, O]{Strategy: Custom, Wrap: wrap}
}

// Forward builds an operation on handles from an operation on providers.
// Errors from op are returned as-is, and nothing is wrapped.
func Forward[H any, P any, R any, O any](a Adapter[H, P], rule Rule[H, R, O], op func(p P) (R, error)) func(h H) (O, error) {
	return func(h H) (O, error) {
		var zero O
		raw, err := op(a.Get(h))
		if err != nil {
			return zero, err
		}
		switch rule.Strategy {
		case Passthrough:
			out, ok := convert[O](raw)
			if !ok {
				return zero, fmt.Errorf("passthrough cannot convert %T to %T", raw, zero)
			}
			return out, nil
		case CloneReplace:
			p, ok := convert[P](raw)
			if !ok {
				return zero, fmt.Errorf("clone-replace cannot store %T in a handle", raw)
			}
			out, ok := convert[O](a.Replace(a.Clone(h), p))
			if !ok {
				return zero, fmt.Errorf("clone-replace cannot convert a handle to %T", zero)
			}
			return out, nil
		case Custom:
			if rule.Wrap == nil {
				return zero, fmt.Errorf("custom delegation rule has no wrap function")
			}
			return rule.Wrap(h, raw)
		}
		return zero, fmt.Errorf("unknown delegation strategy %s", rule.Strategy)
	}
}

// Property reads an attribute of the provider held by h
func Property[H any, P any, V any](a Adapter[H, P], h H, get func(p P) V) V {
	return get(a.Get(h))
}

// convert asserts v to T. A nil interface converts to the zero T.
func convert[T any](v any) (T, bool) {
	if v == nil {
		var zero T
		return zero, true
	}
	out, ok := v.(T)
	return out, ok
}
