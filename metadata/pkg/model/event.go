package model

// RecordEventType defines the type of a movie record event.
type RecordEventType string

const (
	RecordEventTypePut = RecordEventType("put")
)

// RecordEvent is the envelope for movie records imported through the event
// stream.
type RecordEvent struct {
	Record     MovieRecord     `json:"record"`
	ProviderID string          `json:"providerId"`
	EventType  RecordEventType `json:"eventType"`
}
