// Package async provides Deferred, a one-shot future over a value of type
// T, and AsyncStream, an asynchronous sequence producer, reproducing the
// settlement and awaiting semantics of a JS-style event-loop concurrency
// model on top of Go's goroutines.
package async

import "fmt"

// Unit stands in for the "T = unit" / "R = unit" specialization called for
// by the spec. Go has no template specialization, so there is no separate
// Deferred[Unit] struct: it's the same generic Deferred instantiated at
// Unit, with ResolveUnit below for the no-argument ergonomics.
type Unit = struct{}

// parker holds the handshake channels for the single awaiter a Deferred
// may have parked on it at any one time.
type parker[T any] struct {
	coro *Coro
	in   chan struct{}
}

// Deferred is a one-shot future over a value of type T. It settles exactly
// once, either with a value (Resolve) or a failure (Reject), and delivers
// that settlement to at most one of: a parked awaiter (via Await), a
// registered Then/Catch callback pair, or a later caller that finds it
// already settled.
//
// A Deferred must not be shared across goroutines except through Resolve,
// Reject, Await, Then and Catch themselves; it performs no locking and
// assumes the single-threaded, cooperative scheduling model described in
// the package design notes.
type Deferred[T any] struct {
	value   T
	hasVal  bool
	err     error
	settled bool

	parked  *parker[T]
	onValue func(T)
	onError func(error)
}

// NewDeferred returns a fresh, unsettled Deferred.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{}
}

// Resolved returns a Deferred already settled with v.
func Resolved[T any](v T) *Deferred[T] {
	d := NewDeferred[T]()
	d.Resolve(v)
	return d
}

// Rejected returns a Deferred already settled with err.
func Rejected[T any](err error) *Deferred[T] {
	d := NewDeferred[T]()
	d.Reject(err)
	return d
}

// ResolveUnit resolves a Deferred[Unit], giving it the no-argument surface
// the spec's void specialization calls for.
func ResolveUnit(d *Deferred[Unit]) {
	d.Resolve(Unit{})
}

func (d *Deferred[T]) ready() bool {
	return d.hasVal || d.err != nil
}

// Resolve settles d with value v. If a consumer is parked on d, its
// goroutine is resumed and Resolve blocks until that goroutine reaches its
// own next suspension point or completes, so that — from the caller's
// point of view — resumption happened synchronously within this call. If
// a Then callback is registered, it's invoked synchronously instead. If
// neither, v is simply stored for later delivery. Resolving an
// already-settled Deferred is a silent no-op.
func (d *Deferred[T]) Resolve(v T) {
	if d.settled {
		return
	}
	d.settled = true

	switch {
	case d.parked != nil:
		p := d.parked
		d.parked = nil
		d.value, d.hasVal = v, true
		wakeParked(p)
	case d.onValue != nil:
		cb := d.onValue
		d.onValue, d.onError = nil, nil
		cb(v)
	default:
		d.value, d.hasVal = v, true
	}
}

// Reject settles d with failure err. Symmetric to Resolve in every other
// respect.
func (d *Deferred[T]) Reject(err error) {
	if err == nil {
		panic("async: Reject called with nil error")
	}
	if d.settled {
		return
	}
	d.settled = true

	switch {
	case d.parked != nil:
		p := d.parked
		d.parked = nil
		d.err = err
		wakeParked(p)
	case d.onError != nil:
		cb := d.onError
		d.onValue, d.onError = nil, nil
		cb(err)
	default:
		d.err = err
	}
}

// RejectString settles d with a failure constructed from msg.
func (d *Deferred[T]) RejectString(msg string) {
	d.Reject(fmt.Errorf("%s", msg))
}

// wakeParked hands control to the parked coroutine and blocks until it
// reaches its next suspension point or finishes entirely.
func wakeParked[T any](p *parker[T]) {
	done := make(chan struct{})
	p.coro.notifyResumed = done
	close(p.in)
	<-done
}

// Then registers the single-shot value continuation cb. It fails with
// ErrPrecondition if d is already parked (awaited). Calling Then again on
// an unsettled Deferred replaces the previously registered callback. If d
// already holds a value, cb is invoked synchronously before Then returns
// and the stored value is cleared.
func (d *Deferred[T]) Then(cb func(T)) error {
	if d.parked != nil {
		return fmt.Errorf("%w: Deferred is already awaited", ErrPrecondition)
	}
	d.onValue = cb
	if d.hasVal {
		v := d.value
		d.hasVal = false
		var zero T
		d.value = zero
		cb(v)
	}
	return nil
}

// Catch registers the single-shot failure continuation cb, symmetric to
// Then.
func (d *Deferred[T]) Catch(cb func(error)) error {
	if d.parked != nil {
		return fmt.Errorf("%w: Deferred is already awaited", ErrPrecondition)
	}
	d.onError = cb
	if d.err != nil {
		err := d.err
		d.err = nil
		cb(err)
	}
	return nil
}
