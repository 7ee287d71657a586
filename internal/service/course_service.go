package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type courseRepository interface {
	Create(ctx context.Context, course models.Course) (models.Course, error)
	FindByID(ctx context.Context, id int64) (models.Course, error)
	FindByCode(ctx context.Context, code string) (models.Course, error)
	List(ctx context.Context) []models.Course
	Update(ctx context.Context, id int64, patch models.CoursePatch) (models.Course, error)
	Delete(ctx context.Context, id int64) bool
}

type assignmentsByCourseLister interface {
	ListByCourse(ctx context.Context, courseID int64) []models.CourseAssignment
}

// CreateCourseRequest describes the payload for catalog entries.
type CreateCourseRequest struct {
	Code        string  `json:"code" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits" validate:"gte=1"`
	Department  string  `json:"department" validate:"required"`
	Status      string  `json:"status"`
}

// CourseService orchestrates the course catalog.
type CourseService struct {
	repo        courseRepository
	assignments assignmentsByCourseLister
	faculty     facultyReader
	users       userReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, assignments assignmentsByCourseLister, faculty facultyReader, users userReader, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, assignments: assignments, faculty: faculty, users: users, validator: validate, logger: logger}
}

// Create registers a catalog entry.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	status := models.CourseStatus(req.Status)
	if status == "" {
		status = models.CourseStatusPending
	}

	course, err := s.repo.Create(ctx, models.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Credits:     req.Credits,
		Department:  req.Department,
		Status:      status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Course{}, appErrors.Clone(appErrors.ErrConflict, "course code already taken")
		}
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Get fetches a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// GetByCode fetches a course by its unique code.
func (s *CourseService) GetByCode(ctx context.Context, code string) (models.Course, error) {
	course, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// List returns the whole catalog.
func (s *CourseService) List(ctx context.Context) []models.Course {
	return s.repo.List(ctx)
}

// Update merges a partial patch into the course.
func (s *CourseService) Update(ctx context.Context, id int64, patch models.CoursePatch) (models.Course, error) {
	course, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Course{}, appErrors.Clone(appErrors.ErrConflict, "course code already taken")
		}
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Delete removes the course without cascading to assignments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return nil
}

// Detail enriches a course with its assignments, each carrying the teaching
// faculty identity. A dangling faculty reference leaves the name fields empty.
func (s *CourseService) Detail(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	detail := &models.CourseDetail{
		Course:      course,
		Assignments: []models.AssignmentWithFaculty{},
	}
	for _, assignment := range s.assignments.ListByCourse(ctx, id) {
		entry := models.AssignmentWithFaculty{CourseAssignment: assignment}
		if faculty, err := s.faculty.FindByID(ctx, assignment.FacultyID); err == nil {
			entry.FacultyCode = faculty.FacultyID
			if user, err := s.users.FindByID(ctx, faculty.UserID); err == nil {
				entry.FacultyName = user.FullName
			}
		}
		detail.Assignments = append(detail.Assignments, entry)
	}
	return detail, nil
}
