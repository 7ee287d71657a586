package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type assignmentRepository interface {
	Create(ctx context.Context, assignment models.CourseAssignment) (models.CourseAssignment, error)
	FindByID(ctx context.Context, id int64) (models.CourseAssignment, error)
	List(ctx context.Context) []models.CourseAssignment
	ListByCourse(ctx context.Context, courseID int64) []models.CourseAssignment
	ListByFaculty(ctx context.Context, facultyID int64) []models.CourseAssignment
	Update(ctx context.Context, id int64, patch models.CourseAssignmentPatch) (models.CourseAssignment, error)
	Delete(ctx context.Context, id int64) bool
}

// CreateAssignmentRequest binds a faculty member to a course for a term.
type CreateAssignmentRequest struct {
	CourseID  int64  `json:"course_id" validate:"required"`
	FacultyID int64  `json:"faculty_id" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	Year      int    `json:"year" validate:"gte=1900"`
}

// AssignmentService manages course assignments, the term-scoped link
// between a course and the faculty member teaching it.
type AssignmentService struct {
	repo      assignmentRepository
	courses   courseReader
	faculty   facultyReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, courses courseReader, faculty facultyReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, courses: courses, faculty: faculty, validator: validate, logger: logger}
}

// Create links a faculty member to a course. Both referenced rows must exist.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (models.CourseAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.CourseAssignment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "course does not exist")
	}
	if _, err := s.faculty.FindByID(ctx, req.FacultyID); err != nil {
		return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "faculty does not exist")
	}

	assignment, err := s.repo.Create(ctx, models.CourseAssignment{
		CourseID:  req.CourseID,
		FacultyID: req.FacultyID,
		Semester:  req.Semester,
		Year:      req.Year,
	})
	if err != nil {
		return models.CourseAssignment{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Get fetches an assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id int64) (models.CourseAssignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return assignment, nil
}

// List returns all assignments in insertion order.
func (s *AssignmentService) List(ctx context.Context) []models.CourseAssignment {
	return s.repo.List(ctx)
}

// ListByCourse returns the assignments for one course.
func (s *AssignmentService) ListByCourse(ctx context.Context, courseID int64) []models.CourseAssignment {
	return s.repo.ListByCourse(ctx, courseID)
}

// ListByFaculty returns the assignments taught by one faculty member.
func (s *AssignmentService) ListByFaculty(ctx context.Context, facultyID int64) []models.CourseAssignment {
	return s.repo.ListByFaculty(ctx, facultyID)
}

// Update merges a partial patch. Retargeted references are checked again.
func (s *AssignmentService) Update(ctx context.Context, id int64, patch models.CourseAssignmentPatch) (models.CourseAssignment, error) {
	if patch.CourseID != nil {
		if _, err := s.courses.FindByID(ctx, *patch.CourseID); err != nil {
			return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "course does not exist")
		}
	}
	if patch.FacultyID != nil {
		if _, err := s.faculty.FindByID(ctx, *patch.FacultyID); err != nil {
			return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "faculty does not exist")
		}
	}
	assignment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.CourseAssignment{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return assignment, nil
}

// Delete removes the assignment. Enrollments pointing at it become dangling
// and are skipped by lenient joins.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return nil
}
