package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Used for request ids and for the
// message ids of metric updates posted without an idempotency key.
var NewULID = func() string {
	return ulid.Make().String()
}

// NewULIDs generates n ULIDs. Make draws from a process-wide monotonic entropy
// source, so the ids sort in generation order even within one millisecond.
func NewULIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = NewULID()
	}
	return ids
}
