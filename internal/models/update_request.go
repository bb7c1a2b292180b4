package models

// UpdateRequest is the aggregated increment for one bucket within a batch.
// MessageIDs keeps first-seen order and holds each id once.
type UpdateRequest struct {
	Key        BucketKey
	Amount     int64
	MessageIDs []string
}

// UpdateAggregation is the result of folding one batch of messages.
//
// Example:
//
//	two events for ws-1/emails-sent at 2024-01-15T14 with counts 3 and 7
//	Requests:    {WSP#ws-1#MET#emails-sent/H#2024-01-15T14: 10, .../D#2024-01-15: 10}
//	MessageKeys: {"m1": [hourly, daily], "m2": [hourly, daily]}
type UpdateAggregation struct {
	Requests    map[BucketKey]*UpdateRequest
	MessageKeys map[string][]BucketKey
	// MessageIDs lists accepted messages in arrival order.
	MessageIDs []string
	Dropped    int
}

func NewUpdateAggregation() *UpdateAggregation {
	return &UpdateAggregation{
		Requests:    make(map[BucketKey]*UpdateRequest),
		MessageKeys: make(map[string][]BucketKey),
	}
}

func (a *UpdateAggregation) IsEmpty() bool {
	return len(a.Requests) == 0
}
