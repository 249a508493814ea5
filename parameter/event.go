package parameter

// Event Types
const (
	// MaxEventTypes is the exclusive upper bound of valid event type ids,
	// matching a 16-bit host event numbering space
	MaxEventTypes = 1 << 16

	// UserEventBase is the first event type id reserved for user events
	UserEventBase = 1 << 15
)

// Event Queue
const (
	// EventQueueSize is the ring buffer capacity, must be a power of two
	EventQueueSize = 256

	// EventBufferMask wraps ring indices
	EventBufferMask = EventQueueSize - 1
)
