package resilience

import (
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Group deduplicates concurrent calls for the same key and hands every
// waiter the typed result of the single execution.
type Group[T any] struct {
	g singleflight.Group
}

func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	out, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})

	var zero T
	if out == nil {
		return zero, err, shared
	}
	value, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("singleflight key=%s: unexpected result type %T", key, out), shared
	}
	return value, err, shared
}

// Forget drops an in-flight key so the next caller starts a fresh execution.
func (g *Group[T]) Forget(key string) {
	g.g.Forget(key)
}
