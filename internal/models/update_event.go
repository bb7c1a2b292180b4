package models

import "time"

// UpdateEvent is one validated increment. UserID is empty when the event is
// tracked for the workspace only. Timestamp is UTC at hour resolution.
type UpdateEvent struct {
	WorkspaceID string
	UserID      string
	MetricID    string
	Count       int64
	Timestamp   time.Time
}

func (e *UpdateEvent) HasUser() bool {
	return e.UserID != ""
}
