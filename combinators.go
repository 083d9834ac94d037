package async

import "fmt"

// All returns a Deferred that resolves with the values of every input, in
// positional order, once all have resolved. On the first rejection, the
// result is rejected with that failure's message and settlements of the
// other inputs are ignored — no value is ever written into the result
// once the aggregate has rejected. All fails synchronously with
// ErrPrecondition if ds is empty. All is implemented entirely on Then/
// Catch, never by awaiting, and tolerates inputs already settled at call
// time.
func All[T any](ds []*Deferred[T]) *Deferred[[]T] {
	result := NewDeferred[[]T]()

	if len(ds) == 0 {
		result.Reject(fmt.Errorf("%w: All called with no promises", ErrPrecondition))
		return result
	}

	values := make([]T, len(ds))
	pending := len(ds)
	rejected := false

	for i, d := range ds {
		i := i
		_ = d.Then(func(v T) {
			if rejected {
				return
			}
			values[i] = v
			pending--
			if pending == 0 {
				result.Resolve(values)
			}
		})
		_ = d.Catch(func(err error) {
			if rejected {
				return
			}
			rejected = true
			result.Reject(err)
		})
	}

	return result
}

// Any returns a Deferred that resolves with the value of whichever input
// settles first by resolving, regardless of position. If every input
// rejects, the result rejects with the fixed ErrAllRejected failure;
// individual failure messages are intentionally not aggregated. Any fails
// synchronously with ErrPrecondition if ds is empty.
func Any[T any](ds []*Deferred[T]) *Deferred[T] {
	result := NewDeferred[T]()

	if len(ds) == 0 {
		result.Reject(fmt.Errorf("%w: Any called with no promises", ErrPrecondition))
		return result
	}

	pending := len(ds)
	resolved := false

	for _, d := range ds {
		_ = d.Then(func(v T) {
			if resolved {
				return
			}
			resolved = true
			result.Resolve(v)
		})
		_ = d.Catch(func(err error) {
			if resolved {
				return
			}
			pending--
			if pending == 0 {
				result.Reject(ErrAllRejected)
			}
		})
	}

	return result
}

// Race returns a Deferred that settles with the outcome — value or
// failure — of whichever input settles first, in either direction. All
// other inputs' later settlements are ignored. Race fails synchronously
// with ErrPrecondition if ds is empty.
func Race[T any](ds []*Deferred[T]) *Deferred[T] {
	result := NewDeferred[T]()

	if len(ds) == 0 {
		result.Reject(fmt.Errorf("%w: Race called with no promises", ErrPrecondition))
		return result
	}

	finished := false

	for _, d := range ds {
		_ = d.Then(func(v T) {
			if finished {
				return
			}
			finished = true
			result.Resolve(v)
		})
		_ = d.Catch(func(err error) {
			if finished {
				return
			}
			finished = true
			result.Reject(err)
		})
	}

	return result
}
