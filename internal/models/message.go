package models

// Message is one inbound delivery: an opaque payload and the id the delivery
// system uses to redeliver it.
type Message struct {
	MessageID string `json:"messageId"`
	Body      string `json:"body"`
}
