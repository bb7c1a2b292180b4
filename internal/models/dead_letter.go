package models

import "time"

// DeadLetter is a message that exhausted its delivery attempts.
//
// Example JSON:
//
//	{
//	  "messageId": "01HMB3Y8X1J8Q4W7ZC2T5N6PKD",
//	  "body": "{\"workspaceId\":\"ws-1\",\"metricId\":\"emails-sent\",\"count\":5,\"date\":\"2024-01-15T14\"}",
//	  "attempts": 5,
//	  "reasonCode": "STR_1000",
//	  "failedAt": "2024-01-15T14:03:12Z"
//	}
type DeadLetter struct {
	MessageID  string    `json:"messageId"`
	Body       string    `json:"body"`
	Attempts   int       `json:"attempts"`
	// ReasonCode is the STR_1xxx code that sent the message here.
	ReasonCode string    `json:"reasonCode,omitempty"`
	FailedAt   time.Time `json:"failedAt"`
}
