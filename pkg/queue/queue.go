// Package queue provides a generic FIFO queue, built over
// github.com/eapache/queue's ring-buffer implementation.
package queue

import eapachequeue "github.com/eapache/queue"

// Queue is a generic FIFO. The zero value is not usable; construct with
// New.
type Queue[T any] struct {
	q *eapachequeue.Queue
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{q: eapachequeue.New()}
}

// Enqueue adds an item to the end of the queue.
func (q *Queue[T]) Enqueue(item T) {
	q.q.Add(item)
}

// Dequeue removes and returns the item at the front of the queue. The
// second return value is false if the queue was empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	item := q.q.Peek()
	q.q.Remove()
	return item.(T), true
}

// Peek returns the item at the front of the queue without removing it.
// The second return value is false if the queue was empty.
func (q *Queue[T]) Peek() (T, bool) {
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return q.q.Peek().(T), true
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	return q.q.Length()
}
