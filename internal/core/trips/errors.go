package trips

import "errors"

// Sentinel errors for trip store access
var (
	// ErrStoreUnavailable is returned when the trip store cannot be reached.
	// Fatal for the request: the engine does not retry, callers decide.
	ErrStoreUnavailable = errors.New("trip store unavailable")
)
