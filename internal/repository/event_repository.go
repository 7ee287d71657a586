package repository

import (
	"context"
	"sort"
	"time"

	"github.com/campuskit/campus-api/internal/models"
)

// EventRepository manages the in-memory calendar events table.
type EventRepository struct {
	table *Table[models.Event]
}

// NewEventRepository constructs an empty EventRepository.
func NewEventRepository() *EventRepository {
	return &EventRepository{table: NewTable[models.Event]()}
}

// Create inserts a new calendar event.
func (r *EventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	return r.table.Insert(func(id int64) models.Event {
		event.ID = id
		return event
	}, nil)
}

// FindByID fetches an event by primary key.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (models.Event, error) {
	return r.table.Get(id)
}

// List returns all events in insertion order.
func (r *EventRepository) List(ctx context.Context) []models.Event {
	return r.table.List()
}

// ListUpcoming returns events starting strictly after now, ascending by start.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) []models.Event {
	upcoming := r.table.Filter(func(e models.Event) bool { return e.StartDate.After(now) })
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	return upcoming
}

// Update merges the patch into the stored event.
func (r *EventRepository) Update(ctx context.Context, id int64, patch models.EventPatch) (models.Event, error) {
	return r.table.Update(id, func(e models.Event) models.Event {
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Description != nil {
			e.Description = patch.Description
		}
		if patch.StartDate != nil {
			e.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			e.EndDate = *patch.EndDate
		}
		if patch.Location != nil {
			e.Location = patch.Location
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		return e
	}, nil)
}

// Delete removes the event and reports whether a row existed.
func (r *EventRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
