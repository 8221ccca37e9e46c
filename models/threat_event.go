package models

import "time"

// EventStatus describes the processing state of a recorded threat event.
type EventStatus string

const (
	// EventStatusRecorded marks events persisted on the primary store.
	EventStatusRecorded EventStatus = "recorded"

	// EventStatusBuffered marks events spilled to the local buffer while
	// the primary store was unavailable. The drain worker replays them.
	EventStatusBuffered EventStatus = "buffered"
)

// ThreatEvent is the immutable audit record of one non-default decision.
// Events are created exactly once per evaluated request that results in
// Flag or Block (Allow recording is configurable) and are never mutated
// after creation.
type ThreatEvent struct {
	// ID is the server-assigned identifier of the event.
	ID int64 `json:"id"`

	// CorrelationID is a per-event UUID attached at construction time so
	// that callers replaying a failed recording can deduplicate.
	CorrelationID string `json:"correlation_id"`

	// URL, Protocol, Host, and Path snapshot the originating request.
	URL      string `json:"url"`
	Protocol string `json:"protocol"`
	Host     string `json:"host"`
	Path     string `json:"path"`

	// Status is the processing state of the event.
	Status EventStatus `json:"status"`

	// Timestamp is the server-assigned evaluation time.
	Timestamp time.Time `json:"timestamp"`

	// ActionTaken is the decision's action.
	ActionTaken Action `json:"action_taken"`

	// Score is the decision's risk score, 0-100.
	Score int `json:"score"`

	// Category is the decision's category.
	Category string `json:"category"`

	// DeviceID is the originating device.
	DeviceID int64 `json:"device_id"`
}

// TableName returns the name of the database table
// associated with the ThreatEvent model.
func (e ThreatEvent) TableName() string {
	return "threat_events"
}
