package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type eventRepository interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	FindByID(ctx context.Context, id int64) (models.Event, error)
	List(ctx context.Context) []models.Event
	ListUpcoming(ctx context.Context, now time.Time) []models.Event
	Update(ctx context.Context, id int64, patch models.EventPatch) (models.Event, error)
	Delete(ctx context.Context, id int64) bool
}

// CreateEventRequest describes a calendar event.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Location    *string   `json:"location,omitempty"`
	Type        string    `json:"type" validate:"required"`
}

// EventService manages the campus calendar.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Create registers an event. The end date may not precede the start date.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Event{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	eventType := models.EventType(req.Type)
	if !eventType.Valid() {
		return models.Event{}, appErrors.Clone(appErrors.ErrValidation, "invalid event type")
	}
	if req.EndDate.Before(req.StartDate) {
		return models.Event{}, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}

	event, err := s.repo.Create(ctx, models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Type:        eventType,
	})
	if err != nil {
		return models.Event{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil
}

// Get fetches an event by id.
func (s *EventService) Get(ctx context.Context, id int64) (models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Event{}, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// List returns all events in insertion order.
func (s *EventService) List(ctx context.Context) []models.Event {
	return s.repo.List(ctx)
}

// Upcoming returns events that start strictly after the current time,
// soonest first.
func (s *EventService) Upcoming(ctx context.Context) []models.Event {
	return s.repo.ListUpcoming(ctx, s.now())
}

// Update merges a partial patch into the event.
func (s *EventService) Update(ctx context.Context, id int64, patch models.EventPatch) (models.Event, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return models.Event{}, appErrors.Clone(appErrors.ErrValidation, "invalid event type")
	}
	event, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Event{}, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// Delete removes the event.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}
