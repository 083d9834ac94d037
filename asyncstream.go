package async

import (
	"fmt"

	"github.com/chemwolf6922/js-style-co-routine/pkg/queue"
)

// Item is the payload of a Deferred returned by AsyncStream.Next: it
// stands in for the "optional<T>" the spec describes, since that payload
// must itself be carried as the value of a Deferred. Done is true exactly
// when the stream has ended and no further value follows; Value is the
// zero value of T in that case.
type Item[T any] struct {
	Value T
	Done  bool
}

// AsyncStream is an asynchronous producer of a sequence of T values
// followed by an optional terminal return value of type R. A consumer
// repeatedly calls Next to receive items in the order they were fed; a
// producer calls Feed, Finish (or FinishUnit) and Reject to drive the
// stream. Items become visible to the consumer in FIFO order: an awaiting
// consumer is always preferred over the buffer, so the buffer only ever
// holds values when nobody is waiting for them yet.
type AsyncStream[T, R any] struct {
	buffer     *queue.Queue[T]
	pendingErr error
	waiter     *Deferred[Item[T]]
	finished   bool
	returnVal  R
	hasReturn  bool
}

// NewAsyncStream returns a fresh, unfinished AsyncStream with an empty
// buffer.
func NewAsyncStream[T, R any]() *AsyncStream[T, R] {
	return &AsyncStream[T, R]{buffer: queue.New[T]()}
}

// Next returns a Deferred that settles with the stream's next item: a
// buffered value if one is available, the stream's pending failure if one
// was produced before any consumer parked, empty (Item.Done == true) if
// the stream has already finished, or — the common case — a fresh
// Deferred parked to be resolved by the next Feed/Finish/Reject call.
// Calling Next again while a previous call is still pending fails with
// ErrProtocol.
func (s *AsyncStream[T, R]) Next() *Deferred[Item[T]] {
	d := NewDeferred[Item[T]]()

	switch {
	case s.buffer.Len() > 0:
		v, _ := s.buffer.Dequeue()
		d.Resolve(Item[T]{Value: v})
	case s.pendingErr != nil:
		err := s.pendingErr
		s.pendingErr = nil
		d.Reject(err)
	case s.finished:
		d.Resolve(Item[T]{Done: true})
	case s.waiter != nil:
		d.Reject(fmt.Errorf("%w: overlapping Next calls are not allowed", ErrProtocol))
	default:
		s.waiter = d
	}

	return d
}

// Feed delivers v to the stream: to the parked consumer if one is
// waiting, or into the buffer otherwise. Feed never suspends the caller.
func (s *AsyncStream[T, R]) Feed(v T) {
	if s.waiter != nil {
		w := s.waiter
		s.waiter = nil
		w.Resolve(Item[T]{Value: v})
		return
	}
	s.buffer.Enqueue(v)
}

// Finish marks the stream finished with terminal return value r. The
// return value is stored before any parked waiter is resolved, so that a
// finish-triggered continuation can safely read it via ReturnValue.
func (s *AsyncStream[T, R]) Finish(r R) {
	s.finished = true
	s.returnVal, s.hasReturn = r, true

	if s.waiter != nil {
		w := s.waiter
		s.waiter = nil
		w.Resolve(Item[T]{Done: true})
	}
}

// FinishUnit is Finish's no-argument counterpart for AsyncStream[T, Unit].
func FinishUnit[T any](s *AsyncStream[T, Unit]) {
	s.Finish(Unit{})
}

// Reject marks the stream finished by failure err. If a consumer is
// parked, it's rejected immediately; otherwise err is stored and
// delivered by the next Next call.
func (s *AsyncStream[T, R]) Reject(err error) {
	s.finished = true

	if s.waiter != nil {
		w := s.waiter
		s.waiter = nil
		w.Reject(err)
		return
	}
	s.pendingErr = err
}

// RejectString rejects the stream with a failure constructed from msg.
func (s *AsyncStream[T, R]) RejectString(msg string) {
	s.Reject(fmt.Errorf("%s", msg))
}

// ReturnValue returns the stream's terminal value. It fails with
// ErrReturnValueUnset unless the stream has finished with a typed return
// value already stored.
func (s *AsyncStream[T, R]) ReturnValue() (R, error) {
	if !s.finished || !s.hasReturn {
		var zero R
		return zero, fmt.Errorf("%w: stream has not finished with a return value", ErrReturnValueUnset)
	}
	return s.returnVal, nil
}
