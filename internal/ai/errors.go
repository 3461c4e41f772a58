package ai

import "errors"

// Failure variants surfaced by the model clients. Callers decide how each
// maps onto the HTTP contract; the clients never swallow a cause.
var (
	// ErrMalformedResponse means the model answered but the payload could
	// not be parsed into the expected shape.
	ErrMalformedResponse = errors.New("model returned malformed response")

	// ErrRateLimited means the provider rejected the call with a quota or
	// rate signal.
	ErrRateLimited = errors.New("model provider rate limited the request")

	// ErrTimeout means the call exceeded the configured deadline.
	ErrTimeout = errors.New("model call timed out")
)
