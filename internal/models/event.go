package models

import "time"

// EventType categorises calendar entries.
type EventType string

const (
	EventTypeAcademic        EventType = "academic"
	EventTypeAdministrative  EventType = "administrative"
	EventTypeExtracurricular EventType = "extracurricular"
)

// Valid reports whether the type is one of the known values.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeAcademic, EventTypeAdministrative, EventTypeExtracurricular:
		return true
	}
	return false
}

// Event is a calendar entry, independent of the other entities.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    *string   `json:"location,omitempty"`
	Type        EventType `json:"type"`
}

// EventPatch carries a partial update; only non-nil fields are applied.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Type        *EventType `json:"type,omitempty"`
}
