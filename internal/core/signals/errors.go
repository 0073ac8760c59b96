package signals

import "errors"

// Sentinel errors for signal aggregation
var (
	// ErrStoreUnavailable is returned when the relation or comment store
	// cannot be reached. Fatal for the request, same policy as the trip store.
	ErrStoreUnavailable = errors.New("signal store unavailable")
)
