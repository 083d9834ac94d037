package async

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoDoesNotSuspendAtEntryWhenBodyNeverAwaits(t *testing.T) {
	d := Go(func(c *Coro) (int, error) {
		return 5, nil
	})
	assert.True(t, d.ready())

	v, err := takeSettled(d)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestGoRecoversPanicAsRejection(t *testing.T) {
	d := Go(func(c *Coro) (int, error) {
		panic("kaboom")
	})

	_, err := takeSettled(d)
	assert.ErrorContains(t, err, "kaboom")
}

func TestGoStreamYieldIsNotASuspensionPoint(t *testing.T) {
	stream := GoStreamUnit(func(c *Coro, y *Yielder[int, Unit]) error {
		y.Yield(1)
		y.Yield(2)
		y.Yield(3)
		return nil
	})

	item, err := takeSettled(stream.Next())
	require.NoError(t, err)
	assert.Equal(t, Item[int]{Value: 1}, item)

	item, err = takeSettled(stream.Next())
	require.NoError(t, err)
	assert.Equal(t, Item[int]{Value: 2}, item)
}

func TestGoStreamRecoversPanicAsRejection(t *testing.T) {
	stream := GoStreamUnit(func(c *Coro, y *Yielder[int, Unit]) error {
		panic("stream kaboom")
	})

	_, err := takeSettled(stream.Next())
	assert.ErrorContains(t, err, "stream kaboom")
}

func TestGoStreamEmptyBodyStillDeliversTerminalDone(t *testing.T) {
	stream := GoStreamUnit(func(c *Coro, y *Yielder[int, Unit]) error {
		return nil
	})

	item, err := takeSettled(stream.Next())
	require.NoError(t, err)
	assert.True(t, item.Done)
}

func TestAwaitReturnsImmediatelyWhenAlreadyReady(t *testing.T) {
	d := Go(func(c *Coro) (int, error) {
		return Await(c, Resolved(3))
	})

	v, err := takeSettled(d)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
