package async

import "errors"

// Sentinel errors for the taxonomy described by this library's design
// notes. User-supplied failures (producer Reject, coroutine body errors)
// are plain errors and are never wrapped in any of these.
var (
	// ErrPrecondition is returned when a combinator is invoked with an
	// empty input, or when Then/Catch and Await are used in combination on
	// the same Deferred.
	ErrPrecondition = errors.New("precondition error")

	// ErrProtocol is returned for overlapping Next calls on one AsyncStream.
	ErrProtocol = errors.New("protocol error")

	// ErrReturnValueUnset is returned by ReturnValue before the stream has
	// finished with a typed return value.
	ErrReturnValueUnset = errors.New("return value not set")

	// ErrAllRejected is the fixed failure Any settles with when every
	// input promise rejected. Per-input messages are intentionally not
	// aggregated.
	ErrAllRejected = errors.New("all promises rejected")

	// ErrCancelled is the sentinel failure a CancelableDeferred rejects
	// with when Cancel is called before settlement.
	ErrCancelled = errors.New("cancelled")
)
