package async

import (
	"time"

	"github.com/chemwolf6922/js-style-co-routine/pkg/el"
)

// CancelableDeferred wraps a Deferred[T] together with the EL timeout
// that will eventually settle it, giving callers a way to abandon the
// wait early. This is the "encapsulated" pattern the design notes
// describe: cancellation of the external work (the timeout) is this
// wrapper's responsibility, never the bare Deferred's.
type CancelableDeferred[T any] struct {
	inner  *Deferred[T]
	loop   el.EL
	handle el.Handle
}

// AfterTimeout returns a CancelableDeferred that resolves with v once d
// elapses on loop, unless Cancel is called first.
func AfterTimeout[T any](loop el.EL, d time.Duration, v T) *CancelableDeferred[T] {
	inner := NewDeferred[T]()
	c := &CancelableDeferred[T]{inner: inner, loop: loop}
	c.handle = loop.SetTimeout(func() { inner.Resolve(v) }, d)
	return c
}

// Cancel clears the wrapped timeout and, if the inner Deferred has not
// yet settled, rejects it with ErrCancelled.
func (c *CancelableDeferred[T]) Cancel() {
	c.loop.ClearTimeout(c.handle)
	if !c.inner.ready() {
		c.inner.Reject(ErrCancelled)
	}
}

// Deferred returns the wrapped Deferred, for use with Await, Then, Catch
// or the combinators.
func (c *CancelableDeferred[T]) Deferred() *Deferred[T] {
	return c.inner
}
