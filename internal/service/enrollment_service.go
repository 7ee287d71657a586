package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment models.Enrollment) (models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (models.Enrollment, error)
	List(ctx context.Context) []models.Enrollment
	ListByStudent(ctx context.Context, studentID int64) []models.Enrollment
	ListByAssignment(ctx context.Context, assignmentID int64) []models.Enrollment
	Update(ctx context.Context, id int64, patch models.EnrollmentPatch) (models.Enrollment, error)
	Delete(ctx context.Context, id int64) bool
}

type studentReader interface {
	FindByID(ctx context.Context, id int64) (models.Student, error)
}

// CreateEnrollmentRequest places a student into a course assignment.
type CreateEnrollmentRequest struct {
	StudentID          int64      `json:"student_id" validate:"required"`
	CourseAssignmentID int64      `json:"course_assignment_id" validate:"required"`
	EnrollmentDate     *time.Time `json:"enrollment_date,omitempty"`
	Status             string     `json:"status"`
}

// EnrollmentService manages enrollments, the hub rows that attendance and
// grades hang off.
type EnrollmentService struct {
	repo        enrollmentRepository
	students    studentReader
	assignments assignmentReader
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, assignments assignmentReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:        repo,
		students:    students,
		assignments: assignments,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// Create enrolls a student. Both the student and the assignment must exist.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Enrollment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "student does not exist")
	}
	if _, err := s.assignments.FindByID(ctx, req.CourseAssignmentID); err != nil {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "course assignment does not exist")
	}

	status := models.EnrollmentStatus(req.Status)
	if status == "" {
		status = models.EnrollmentStatusEnrolled
	}
	date := s.now()
	if req.EnrollmentDate != nil {
		date = *req.EnrollmentDate
	}

	enrollment, err := s.repo.Create(ctx, models.Enrollment{
		StudentID:          req.StudentID,
		CourseAssignmentID: req.CourseAssignmentID,
		EnrollmentDate:     date,
		Status:             status,
	})
	if err != nil {
		return models.Enrollment{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return enrollment, nil
}

// Get fetches an enrollment by id.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// List returns all enrollments in insertion order.
func (s *EnrollmentService) List(ctx context.Context) []models.Enrollment {
	return s.repo.List(ctx)
}

// ListByStudent returns the enrollments belonging to one student.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) []models.Enrollment {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByAssignment returns the enrollments under one course assignment.
func (s *EnrollmentService) ListByAssignment(ctx context.Context, assignmentID int64) []models.Enrollment {
	return s.repo.ListByAssignment(ctx, assignmentID)
}

// Update merges a partial patch. Retargeted references are checked again.
func (s *EnrollmentService) Update(ctx context.Context, id int64, patch models.EnrollmentPatch) (models.Enrollment, error) {
	if patch.StudentID != nil {
		if _, err := s.students.FindByID(ctx, *patch.StudentID); err != nil {
			return models.Enrollment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "student does not exist")
		}
	}
	if patch.CourseAssignmentID != nil {
		if _, err := s.assignments.FindByID(ctx, *patch.CourseAssignmentID); err != nil {
			return models.Enrollment{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "course assignment does not exist")
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrValidation, "invalid enrollment status")
	}
	enrollment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Enrollment{}, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// Delete removes the enrollment. Attendance and grade rows referencing it
// are left in place and become invisible to record joins.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}
