package dto

import "time"

// ActivityMessage is the wire envelope published on the activity
// topic for every notable chat/document event.
type ActivityMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
