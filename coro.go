package async

import "fmt"

// Coro is the handle a running coroutine body receives. It exists purely
// to let Resolve/Reject know when the coroutine they just resumed has
// reached its next suspension point (another Await) or has finished, so
// that settlement can be observed as synchronous from the settler's point
// of view, matching the resumption-timing rule in the package design
// notes. Nothing about Coro is meant to be used outside of a function
// passed to Go or GoStream.
type Coro struct {
	notifyResumed chan struct{}
}

// signalIfOwed closes the channel a previous Resolve/Reject call is
// blocked on, if one is pending, unblocking that call. Must be called
// exactly once per suspension point and once more when the coroutine body
// returns.
func (c *Coro) signalIfOwed() {
	if c.notifyResumed != nil {
		close(c.notifyResumed)
		c.notifyResumed = nil
	}
}

// Await suspends the calling coroutine until d settles, then returns its
// value or re-raises its failure as a Go error. If d is already settled,
// Await returns immediately without suspending. Awaiting a Deferred that
// already has a Then or Catch callback registered, or that is already
// parked by another awaiter, fails with ErrPrecondition — the spec leaves
// the former direction undefined and this package picks "also rejected"
// for consistency with the latter.
func Await[T any](c *Coro, d *Deferred[T]) (T, error) {
	var zero T

	if d.ready() {
		return takeSettled(d)
	}

	if d.onValue != nil || d.onError != nil {
		return zero, fmt.Errorf("%w: Deferred already has a Then/Catch callback registered", ErrPrecondition)
	}
	if d.parked != nil {
		return zero, fmt.Errorf("%w: Deferred already has a parked awaiter", ErrPrecondition)
	}

	p := &parker[T]{coro: c, in: make(chan struct{})}
	d.parked = p

	c.signalIfOwed()
	<-p.in

	return takeSettled(d)
}

// takeSettled extracts and clears the single delivery of d's value or
// error. Safe to call only once d.ready() is true.
func takeSettled[T any](d *Deferred[T]) (T, error) {
	if d.err != nil {
		err := d.err
		d.err = nil
		var zero T
		return zero, err
	}
	v := d.value
	d.hasVal = false
	var zero T
	d.value = zero
	return v, nil
}

// Go runs f as a coroutine on a new goroutine and returns a Deferred that
// settles with f's result: this is the coroutine return contract for
// functions whose declared return type is Deferred[R]. Control is not
// suspended at entry: Go does not return to its caller until f has reached
// its first Await or has run to completion, the same handshake Resolve/
// Reject use to resume a parked awaiter, applied here to a coroutine's
// very first step. A panic escaping f is recovered and treated as the
// uncaught-failure path.
func Go[R any](f func(c *Coro) (R, error)) *Deferred[R] {
	d := NewDeferred[R]()
	started := make(chan struct{})
	c := &Coro{notifyResumed: started}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.Reject(fmt.Errorf("panic in coroutine: %v", r))
				c.signalIfOwed()
			}
		}()

		v, err := f(c)
		if err != nil {
			d.Reject(err)
		} else {
			d.Resolve(v)
		}
		c.signalIfOwed()
	}()

	<-started
	return d
}

// Yielder is handed to an AsyncStream producer coroutine to feed values
// into the stream it is producing. Yield is never a suspension point: it
// resolves immediately, per the AsyncStream producer contract.
type Yielder[T, R any] struct {
	stream *AsyncStream[T, R]
}

// Yield feeds v into the stream being produced.
func (y *Yielder[T, R]) Yield(v T) {
	y.stream.Feed(v)
}

// GoStream runs f as a coroutine on a new goroutine, producing the
// AsyncStream[T, R] it returns: this is the coroutine return contract for
// functions whose declared return type is AsyncStream[T, R]. f feeds
// values through the Yielder it's given and returns the stream's terminal
// value. Like Go, GoStream does not return to its caller until f has
// reached its first Await or run to completion — Yield is never itself a
// suspension point, so every value a producer yields before its first
// Await is already fed into the stream when GoStream returns. A panic
// escaping f is recovered and rejects the stream.
func GoStream[T, R any](f func(c *Coro, y *Yielder[T, R]) (R, error)) *AsyncStream[T, R] {
	s := NewAsyncStream[T, R]()
	y := &Yielder[T, R]{stream: s}
	started := make(chan struct{})
	c := &Coro{notifyResumed: started}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.Reject(fmt.Errorf("panic in stream producer: %v", r))
				c.signalIfOwed()
			}
		}()

		v, err := f(c, y)
		if err != nil {
			s.Reject(err)
		} else {
			s.Finish(v)
		}
		c.signalIfOwed()
	}()

	<-started
	return s
}

// GoStreamUnit is GoStream's no-argument-finish counterpart for
// AsyncStream[T, Unit], honoring the unit return specialization's rule
// that even an empty-body producer delivers a terminal end-of-stream.
func GoStreamUnit[T any](f func(c *Coro, y *Yielder[T, Unit]) error) *AsyncStream[T, Unit] {
	return GoStream(func(c *Coro, y *Yielder[T, Unit]) (Unit, error) {
		return Unit{}, f(c, y)
	})
}
