package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

func validEventRequest() CreateEventRequest {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return CreateEventRequest{
		Title:     "Orientation",
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
		Type:      string(models.EventTypeAcademic),
	}
}

func TestEventCreate(t *testing.T) {
	svc := NewEventService(repository.NewEventRepository(), nil, nil)

	event, err := svc.Create(context.Background(), validEventRequest())
	require.NoError(t, err)
	assert.Equal(t, "Orientation", event.Title)
	assert.Equal(t, models.EventTypeAcademic, event.Type)
}

func TestEventCreateRejectsBackwardsDates(t *testing.T) {
	svc := NewEventService(repository.NewEventRepository(), nil, nil)

	req := validEventRequest()
	req.EndDate = req.StartDate.Add(-time.Hour)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventCreateRejectsUnknownType(t *testing.T) {
	svc := NewEventService(repository.NewEventRepository(), nil, nil)

	req := validEventRequest()
	req.Type = "party"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventUpcomingUsesClock(t *testing.T) {
	repo := repository.NewEventRepository()
	svc := NewEventService(repo, nil, nil)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for _, e := range []models.Event{
		{Title: "past", StartDate: base.AddDate(0, 0, -1), EndDate: base.AddDate(0, 0, -1).Add(time.Hour), Type: models.EventTypeAcademic},
		{Title: "future", StartDate: base.AddDate(0, 0, 3), EndDate: base.AddDate(0, 0, 3).Add(time.Hour), Type: models.EventTypeAcademic},
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	upcoming := svc.Upcoming(ctx)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "future", upcoming[0].Title)
}
