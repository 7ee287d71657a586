package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type facultyRepository interface {
	Create(ctx context.Context, faculty models.Faculty) (models.Faculty, error)
	FindByID(ctx context.Context, id int64) (models.Faculty, error)
	FindByFacultyID(ctx context.Context, code string) (models.Faculty, error)
	FindByUserID(ctx context.Context, userID int64) (models.Faculty, error)
	List(ctx context.Context) []models.Faculty
	Update(ctx context.Context, id int64, patch models.FacultyPatch) (models.Faculty, error)
	Delete(ctx context.Context, id int64) bool
}

type assignmentsByFacultyLister interface {
	ListByFaculty(ctx context.Context, facultyID int64) []models.CourseAssignment
}

// CreateFacultyRequest describes the payload for faculty profile creation.
type CreateFacultyRequest struct {
	UserID     int64     `json:"user_id" validate:"required"`
	FacultyID  string    `json:"faculty_id" validate:"required"`
	Department string    `json:"department" validate:"required"`
	Position   string    `json:"position" validate:"required"`
	JoinDate   time.Time `json:"join_date"`
	Status     string    `json:"status"`
}

// FacultyService orchestrates faculty profiles and their teaching load view.
type FacultyService struct {
	repo        facultyRepository
	users       userReader
	assignments assignmentsByFacultyLister
	courses     courseReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(repo facultyRepository, users userReader, assignments assignmentsByFacultyLister, courses courseReader, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, users: users, assignments: assignments, courses: courses, validator: validate, logger: logger}
}

// Create registers a faculty profile for an existing user. A user carries at
// most one faculty profile.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Faculty{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return models.Faculty{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if _, err := s.repo.FindByUserID(ctx, req.UserID); err == nil {
		return models.Faculty{}, appErrors.Clone(appErrors.ErrConflict, "user already has a faculty profile")
	}

	status := models.ProfileStatus(req.Status)
	if status == "" {
		status = models.ProfileStatusActive
	}
	joinDate := req.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}

	faculty, err := s.repo.Create(ctx, models.Faculty{
		UserID:     req.UserID,
		FacultyID:  req.FacultyID,
		Department: req.Department,
		Position:   req.Position,
		JoinDate:   joinDate,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Faculty{}, appErrors.Clone(appErrors.ErrConflict, "faculty id already taken")
		}
		return models.Faculty{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	return faculty, nil
}

// Get fetches a faculty profile by id.
func (s *FacultyService) Get(ctx context.Context, id int64) (models.Faculty, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Faculty{}, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return faculty, nil
}

// GetByFacultyID fetches a faculty profile by its faculty code.
func (s *FacultyService) GetByFacultyID(ctx context.Context, code string) (models.Faculty, error) {
	faculty, err := s.repo.FindByFacultyID(ctx, code)
	if err != nil {
		return models.Faculty{}, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return faculty, nil
}

// GetByUserID fetches the faculty profile owned by a user.
func (s *FacultyService) GetByUserID(ctx context.Context, userID int64) (models.Faculty, error) {
	faculty, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return models.Faculty{}, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return faculty, nil
}

// List returns all faculty profiles.
func (s *FacultyService) List(ctx context.Context) []models.Faculty {
	return s.repo.List(ctx)
}

// Update merges a partial patch into the faculty profile.
func (s *FacultyService) Update(ctx context.Context, id int64, patch models.FacultyPatch) (models.Faculty, error) {
	faculty, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Faculty{}, appErrors.Clone(appErrors.ErrConflict, "faculty id already taken")
		}
		return models.Faculty{}, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return faculty, nil
}

// Delete removes the faculty profile without cascading to assignments.
func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return nil
}

// Detail enriches a faculty profile with its user identity and every course
// assignment it teaches. Assignments whose course has gone missing keep a
// null course rather than failing the view.
func (s *FacultyService) Detail(ctx context.Context, id int64) (*models.FacultyDetail, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	user, err := s.users.FindByID(ctx, faculty.UserID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	detail := &models.FacultyDetail{
		Faculty:     faculty,
		User:        user,
		Assignments: []models.AssignmentWithCourse{},
	}
	for _, assignment := range s.assignments.ListByFaculty(ctx, id) {
		entry := models.AssignmentWithCourse{CourseAssignment: assignment}
		if course, err := s.courses.FindByID(ctx, assignment.CourseID); err == nil {
			entry.Course = &course
		}
		detail.Assignments = append(detail.Assignments, entry)
	}
	return detail, nil
}
