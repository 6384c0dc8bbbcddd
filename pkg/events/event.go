package events

import "time"

const (
	PostPublished   = "POST_PUBLISHED"
	PostUpdated     = "POST_UPDATED"
	PostUnpublished = "POST_UNPUBLISHED"
	PostDeleted     = "POST_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "POST_PUBLISHED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewPostEvent builds a post lifecycle event. The slug and author are always
// part of the payload so subscribers can route without a lookup.
func NewPostEvent(eventType, postID, slug, authorID string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"post_id":     postID,
			"slug":        slug,
			"author_id":   authorID,
			"occurred_at": occurredAt.UTC().Format(time.RFC3339),
		},
		OccurredAt: occurredAt,
	}
}
