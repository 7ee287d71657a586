package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

func newGradeFixture(t *testing.T) (*GradeService, recordFixture) {
	t.Helper()
	fx := seedRecordFixture(t)
	return NewGradeService(fx.store.Grades, fx.store.Enrollments, nil, nil), fx
}

func validGradeRequest(enrollmentID int64) CreateGradeRequest {
	return CreateGradeRequest{
		EnrollmentID:   enrollmentID,
		AssignmentName: "Final Exam",
		Score:          74,
		MaxScore:       80,
		Weight:         40,
		Date:           time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestGradeCreate(t *testing.T) {
	svc, fx := newGradeFixture(t)

	grade, err := svc.Create(context.Background(), validGradeRequest(fx.enrollment.ID))
	require.NoError(t, err)
	assert.Equal(t, "Final Exam", grade.AssignmentName)
	assert.Equal(t, 74.0, grade.Score)
}

func TestGradeCreateScoreExceedsMax(t *testing.T) {
	svc, fx := newGradeFixture(t)

	req := validGradeRequest(fx.enrollment.ID)
	req.Score = 90
	req.MaxScore = 80
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradeCreateUnknownEnrollment(t *testing.T) {
	svc, _ := newGradeFixture(t)

	_, err := svc.Create(context.Background(), validGradeRequest(999))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestGradeUpdateScoreAgainstCurrentMax(t *testing.T) {
	svc, fx := newGradeFixture(t)
	ctx := context.Background()

	grade, err := svc.Create(ctx, validGradeRequest(fx.enrollment.ID))
	require.NoError(t, err)

	// Current max is 80; patching only the score above it must fail
	// without touching the stored row.
	tooHigh := 85.0
	_, err = svc.Update(ctx, grade.ID, models.GradePatch{Score: &tooHigh})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	unchanged, err := svc.Get(ctx, grade.ID)
	require.NoError(t, err)
	assert.Equal(t, 74.0, unchanged.Score)
}

func TestGradeUpdateRaisingMaxAllowsHigherScore(t *testing.T) {
	svc, fx := newGradeFixture(t)
	ctx := context.Background()

	grade, err := svc.Create(ctx, validGradeRequest(fx.enrollment.ID))
	require.NoError(t, err)

	score, maxScore := 95.0, 100.0
	updated, err := svc.Update(ctx, grade.ID, models.GradePatch{Score: &score, MaxScore: &maxScore})
	require.NoError(t, err)
	assert.Equal(t, 95.0, updated.Score)
	assert.Equal(t, 100.0, updated.MaxScore)
}

func TestGradeUpdateMissing(t *testing.T) {
	svc, _ := newGradeFixture(t)

	score := 50.0
	_, err := svc.Update(context.Background(), 999, models.GradePatch{Score: &score})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
