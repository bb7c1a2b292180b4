package events

// MetricUpdatePayload is the wire shape of one usage increment.
//
// Example JSON:
//
//	{
//	  "workspaceId": "ws-1",
//	  "metricId": "emails-sent",
//	  "count": 5,
//	  "date": "2024-01-15T14",
//	  "userId": "u-9"
//	}
//
// userId is optional; when present the increment is also tracked for that user.
type MetricUpdatePayload struct {
	WorkspaceID string  `json:"workspaceId" validate:"required"`
	MetricID    string  `json:"metricId" validate:"required"`
	Count       *int64  `json:"count" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,hourstamp"`
	UserID      *string `json:"userId,omitempty" validate:"omitnil,min=1"`
}
