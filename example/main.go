// Command example wires a handful of coroutines to a real-time event loop,
// demonstrating Go, GoStream, Await and the All combinator against pkg/el.Loop.
package main

import (
	"fmt"
	"time"

	async "github.com/chemwolf6922/js-style-co-routine"
	"github.com/chemwolf6922/js-style-co-routine/pkg/el"
)

func delay(loop el.EL, d time.Duration) *async.Deferred[async.Unit] {
	out := async.NewDeferred[async.Unit]()
	loop.SetTimeout(func() { async.ResolveUnit(out) }, d)
	return out
}

func fetchUser(loop el.EL, id int) *async.Deferred[string] {
	return async.Go(func(c *async.Coro) (string, error) {
		if _, err := async.Await(c, delay(loop, 30*time.Millisecond)); err != nil {
			return "", err
		}
		return fmt.Sprintf("user-%d", id), nil
	})
}

func countdown(loop el.EL, from int) *async.AsyncStream[int, async.Unit] {
	return async.GoStreamUnit(func(c *async.Coro, y *async.Yielder[int, async.Unit]) error {
		for n := from; n > 0; n-- {
			if _, err := async.Await(c, delay(loop, 10*time.Millisecond)); err != nil {
				return err
			}
			y.Yield(n)
		}
		return nil
	})
}

func drain(loop el.EL, stream *async.AsyncStream[int, async.Unit]) *async.Deferred[async.Unit] {
	return async.Go(func(c *async.Coro) (async.Unit, error) {
		for {
			item, err := async.Await(c, stream.Next())
			if err != nil {
				return async.Unit{}, err
			}
			if item.Done {
				return async.Unit{}, nil
			}
			fmt.Println("tick", item.Value)
		}
	})
}

func main() {
	loop := el.NewLoop()

	users := async.All([]*async.Deferred[string]{
		fetchUser(loop, 1),
		fetchUser(loop, 2),
		fetchUser(loop, 3),
	})
	_ = users.Then(func(names []string) {
		fmt.Println("fetched:", names)
	})

	stream := countdown(loop, 3)
	done := drain(loop, stream)
	_ = done.Then(func(async.Unit) {
		fmt.Println("countdown finished")
	})

	loop.RunUntilIdle()
}
