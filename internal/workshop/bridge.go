package workshop

import (
	"context"
	"sync"

	"github.com/tanq16/workshopdl/internal/steam"
)

type callbackRegistrar interface {
	RegisterCallback(fn func(steam.Callback)) *steam.CallbackHandle
}

// Bridge turns the first callback of type T that satisfies a predicate into a
// value that can be waited on. It resolves at most once and is not reusable.
type Bridge[T any] struct {
	once   sync.Once
	done   chan struct{}
	value  T
	handle *steam.CallbackHandle
}

// Listen subscribes a new Bridge. Register before issuing the request whose
// callback is awaited, and Close once the value has been consumed.
func Listen[T any](client callbackRegistrar, match func(T) bool) *Bridge[T] {
	b := &Bridge[T]{done: make(chan struct{})}
	b.handle = client.RegisterCallback(func(cb steam.Callback) {
		v, ok := cb.(T)
		if !ok || !match(v) {
			return
		}
		b.once.Do(func() {
			b.value = v
			close(b.done)
		})
	})
	return b
}

// Wait blocks until the bridge resolves or ctx is done.
func (b *Bridge[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-b.done:
		return b.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the bridge has resolved.
func (b *Bridge[T]) Done() <-chan struct{} {
	return b.done
}

// Close removes the subscription. It is safe to call more than once.
func (b *Bridge[T]) Close() {
	b.handle.Unregister()
}
