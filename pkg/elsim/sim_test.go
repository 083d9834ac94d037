package elsim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimLoopFastForwardsDeterministically(t *testing.T) {
	loop := NewLoop()

	var order []string
	loop.SetTimeout(func() { order = append(order, "100ms") }, 100*time.Millisecond)
	loop.SetTimeout(func() { order = append(order, "10ms") }, 10*time.Millisecond)
	loop.SetTimeout(func() { order = append(order, "500ms") }, 500*time.Millisecond)

	start := time.Now()
	loop.RunUntilIdle()
	elapsed := time.Since(start)

	assert.Equal(t, []string{"10ms", "100ms", "500ms"}, order)
	assert.Equal(t, 500*time.Millisecond, loop.Now())
	assert.Less(t, elapsed, 50*time.Millisecond, "simulated loop must not sleep in wall-clock time")
}

func TestSimLoopChainedTimeouts(t *testing.T) {
	loop := NewLoop()

	var fired []int
	var schedule func(n int)
	schedule = func(n int) {
		if n > 3 {
			return
		}
		loop.SetTimeout(func() {
			fired = append(fired, n)
			schedule(n + 1)
		}, 100*time.Millisecond)
	}
	schedule(1)

	loop.RunUntilIdle()

	assert.Equal(t, []int{1, 2, 3}, fired)
	assert.Equal(t, 300*time.Millisecond, loop.Now())
}

func TestSimLoopClearTimeout(t *testing.T) {
	loop := NewLoop()

	fired := false
	h := loop.SetTimeout(func() { fired = true }, 10*time.Millisecond)
	loop.ClearTimeout(h)

	loop.RunUntilIdle()

	assert.False(t, fired)
	assert.Equal(t, 0, loop.Pending())
}

func TestSimLoopStepFiresOneAtATime(t *testing.T) {
	loop := NewLoop()

	count := 0
	loop.SetTimeout(func() { count++ }, time.Millisecond)
	loop.SetTimeout(func() { count++ }, 2*time.Millisecond)

	assert.True(t, loop.Step())
	assert.Equal(t, 1, count)
	assert.True(t, loop.Step())
	assert.Equal(t, 2, count)
	assert.False(t, loop.Step())
}
