package async

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemwolf6922/js-style-co-routine/pkg/elsim"
)

func TestCancelableDeferredFiresWhenNotCancelled(t *testing.T) {
	loop := elsim.NewLoop()
	c := AfterTimeout(loop, 100*time.Millisecond, 100)

	loop.RunUntilIdle()

	v, err := takeSettled(c.Deferred())
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestCancelableDeferredCancelledBeforeFiring(t *testing.T) {
	loop := elsim.NewLoop()
	c := AfterTimeout(loop, 1000*time.Millisecond, 100)

	loop.SetTimeout(func() { c.Cancel() }, 500*time.Millisecond)
	loop.RunUntilIdle()

	_, err := takeSettled(c.Deferred())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 0, loop.Pending())
}

func TestCancelAfterSettlementIsNoop(t *testing.T) {
	loop := elsim.NewLoop()
	c := AfterTimeout(loop, 10*time.Millisecond, 7)

	loop.RunUntilIdle()
	c.Cancel()

	v, err := takeSettled(c.Deferred())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
