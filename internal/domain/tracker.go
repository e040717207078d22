package domain

// MessageTracker throttles assistant calls to a daily quota. LastReset is the
// unix-millisecond timestamp of the midnight the current count belongs to;
// a LastReset before today's midnight means the count is stale.
type MessageTracker struct {
	Count     int   `json:"count"`
	LastReset int64 `json:"lastReset"`
}
