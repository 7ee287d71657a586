package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type gradeRepository interface {
	Create(ctx context.Context, grade models.Grade) (models.Grade, error)
	FindByID(ctx context.Context, id int64) (models.Grade, error)
	List(ctx context.Context) []models.Grade
	ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Grade
	Update(ctx context.Context, id int64, patch models.GradePatch) (models.Grade, error)
	Delete(ctx context.Context, id int64) bool
}

// CreateGradeRequest records a scored item for an enrollment.
type CreateGradeRequest struct {
	EnrollmentID   int64     `json:"enrollment_id" validate:"required"`
	AssignmentName string    `json:"assignment_name" validate:"required"`
	Score          float64   `json:"score" validate:"gte=0"`
	MaxScore       float64   `json:"max_score" validate:"gt=0"`
	Weight         float64   `json:"weight" validate:"gte=0,lte=100"`
	Date           time.Time `json:"date" validate:"required"`
}

// GradeService manages graded items.
type GradeService struct {
	repo        gradeRepository
	enrollments enrollmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(repo gradeRepository, enrollments enrollmentReader, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// Create records a graded item. The enrollment must exist and the score
// cannot exceed the maximum.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Grade{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if req.Score > req.MaxScore {
		return models.Grade{}, appErrors.Clone(appErrors.ErrValidation, "score exceeds max score")
	}
	if _, err := s.enrollments.FindByID(ctx, req.EnrollmentID); err != nil {
		return models.Grade{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment does not exist")
	}

	grade, err := s.repo.Create(ctx, models.Grade{
		EnrollmentID:   req.EnrollmentID,
		AssignmentName: req.AssignmentName,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		Weight:         req.Weight,
		Date:           req.Date,
	})
	if err != nil {
		return models.Grade{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
	}
	return grade, nil
}

// Get fetches a grade by id.
func (s *GradeService) Get(ctx context.Context, id int64) (models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Grade{}, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	return grade, nil
}

// List returns all grades in insertion order.
func (s *GradeService) List(ctx context.Context) []models.Grade {
	return s.repo.List(ctx)
}

// ListByEnrollment returns the grades belonging to one enrollment.
func (s *GradeService) ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Grade {
	return s.repo.ListByEnrollment(ctx, enrollmentID)
}

// Update merges a partial patch into the grade.
func (s *GradeService) Update(ctx context.Context, id int64, patch models.GradePatch) (models.Grade, error) {
	if patch.EnrollmentID != nil {
		if _, err := s.enrollments.FindByID(ctx, *patch.EnrollmentID); err != nil {
			return models.Grade{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment does not exist")
		}
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Grade{}, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	score, maxScore := current.Score, current.MaxScore
	if patch.Score != nil {
		score = *patch.Score
	}
	if patch.MaxScore != nil {
		maxScore = *patch.MaxScore
	}
	if score > maxScore {
		return models.Grade{}, appErrors.Clone(appErrors.ErrValidation, "score exceeds max score")
	}
	grade, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Grade{}, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	return grade, nil
}

// Delete removes the grade.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	return nil
}
