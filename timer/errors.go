package timer

import "errors"

var (
	// ErrEventSource reports a Set source that is neither an event
	// type id nor an event
	ErrEventSource = errors.New("event source must be an event type or event")

	// ErrNotInitialized reports use of the package-level registry
	// before Init
	ErrNotInitialized = errors.New("timer subsystem is not initialized")

	// ErrServiceClosed reports timer registration on a closed service
	ErrServiceClosed = errors.New("timer service is closed")
)
