// Package el defines the Event Loop interface this module's coroutines
// assume but do not themselves implement, plus Loop, a concrete wall-clock
// reference implementation.
package el

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled timeout, returned by SetTimeout and
// accepted by ClearTimeout.
type Handle uint64

// EL is the event loop interface this module's Deferred/AsyncStream
// coroutines are written against: a single-threaded scheduler able to
// delay a callback by some duration and to run until there is no more
// pending work.
type EL interface {
	// SetTimeout schedules cb to run after d and returns a handle that can
	// be passed to ClearTimeout to cancel it before it fires.
	SetTimeout(cb func(), d time.Duration) Handle

	// ClearTimeout cancels a previously scheduled timeout. Clearing an
	// already-fired or already-cleared handle is a no-op.
	ClearTimeout(h Handle)

	// RunUntilIdle drives the loop until no scheduled timeout remains.
	RunUntilIdle()
}

type timer struct {
	handle    Handle
	deadline  time.Time
	cb        func()
	cancelled bool
}

type timerHeap []*timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x interface{}) { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Loop is a wall-clock EL: SetTimeout schedules against time.Now, and
// RunUntilIdle sleeps in between firing due timers. Loop is not safe for
// concurrent use; all calls are expected from the single goroutine driving
// the loop, matching the single-threaded cooperative model the rest of
// this module assumes.
type Loop struct {
	pending    timerHeap
	byHandle   map[Handle]*timer
	nextHandle Handle
}

// NewLoop returns an empty, idle Loop.
func NewLoop() *Loop {
	return &Loop{byHandle: make(map[Handle]*timer)}
}

// SetTimeout implements EL.
func (l *Loop) SetTimeout(cb func(), d time.Duration) Handle {
	l.nextHandle++
	h := l.nextHandle

	t := &timer{handle: h, deadline: time.Now().Add(d), cb: cb}
	heap.Push(&l.pending, t)
	l.byHandle[h] = t

	return h
}

// ClearTimeout implements EL.
func (l *Loop) ClearTimeout(h Handle) {
	if t, ok := l.byHandle[h]; ok {
		t.cancelled = true
		delete(l.byHandle, h)
	}
}

// Pending reports how many timers are still scheduled. Cleared timers are
// not counted, even before they have been popped off the heap.
func (l *Loop) Pending() int {
	return len(l.byHandle)
}

// RunUntilIdle implements EL: pops and fires due timers in deadline order,
// sleeping as needed, until none remain.
func (l *Loop) RunUntilIdle() {
	for l.pending.Len() > 0 {
		t := l.pending[0]

		if t.cancelled {
			heap.Pop(&l.pending)
			continue
		}

		if wait := time.Until(t.deadline); wait > 0 {
			time.Sleep(wait)
		}

		heap.Pop(&l.pending)
		delete(l.byHandle, t.handle)
		t.cb()
	}
}
