// Package elsim provides a deterministic, virtual-clock implementation of
// pkg/el.EL for tests: instead of sleeping in wall-clock time, it
// fast-forwards a simulated clock straight to each timer's deadline, so
// scenarios with real ms-scale delays run instantly while still exercising
// the exact same ordering rules a wall-clock EL would. This is the same
// deterministic-simulation idea as the teacher's scheduler_dst.go, applied
// to timers instead of coroutine scheduling.
package elsim

import (
	"container/heap"
	"time"

	"github.com/chemwolf6922/js-style-co-routine/pkg/el"
)

type simTimer struct {
	handle    el.Handle
	deadline  time.Duration
	cb        func()
	cancelled bool
}

type timerHeap []*simTimer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline < h[j].deadline }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x interface{}) { *h = append(*h, x.(*simTimer)) }
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Loop implements el.EL over a virtual clock that only ever advances when
// a timer fires. Loop is not safe for concurrent use.
type Loop struct {
	now        time.Duration
	pending    timerHeap
	byHandle   map[el.Handle]*simTimer
	nextHandle el.Handle
}

// NewLoop returns an idle Loop with its virtual clock at zero.
func NewLoop() *Loop {
	return &Loop{byHandle: make(map[el.Handle]*simTimer)}
}

// Now returns the loop's current virtual time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// SetTimeout implements el.EL, scheduling cb at l.Now()+d in virtual time.
func (l *Loop) SetTimeout(cb func(), d time.Duration) el.Handle {
	l.nextHandle++
	h := l.nextHandle

	t := &simTimer{handle: h, deadline: l.now + d, cb: cb}
	heap.Push(&l.pending, t)
	l.byHandle[h] = t

	return h
}

// ClearTimeout implements el.EL.
func (l *Loop) ClearTimeout(h el.Handle) {
	if t, ok := l.byHandle[h]; ok {
		t.cancelled = true
		delete(l.byHandle, h)
	}
}

// Pending reports how many timers are still scheduled.
func (l *Loop) Pending() int {
	return len(l.byHandle)
}

// Step fires the single earliest pending timer, fast-forwarding the
// virtual clock to its deadline first, and reports whether it fired one.
// Step never sleeps.
func (l *Loop) Step() bool {
	for l.pending.Len() > 0 {
		t := heap.Pop(&l.pending).(*simTimer)
		if t.cancelled {
			continue
		}

		if t.deadline > l.now {
			l.now = t.deadline
		}
		delete(l.byHandle, t.handle)
		t.cb()
		return true
	}
	return false
}

// RunUntilIdle implements el.EL: repeatedly Steps until no timer remains,
// including any timers newly scheduled by callbacks fired along the way.
func (l *Loop) RunUntilIdle() {
	for l.Step() {
	}
}
