package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type attendanceRepository interface {
	Create(ctx context.Context, record models.Attendance) (models.Attendance, error)
	FindByID(ctx context.Context, id int64) (models.Attendance, error)
	List(ctx context.Context) []models.Attendance
	ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Attendance
	Update(ctx context.Context, id int64, patch models.AttendancePatch) (models.Attendance, error)
	Delete(ctx context.Context, id int64) bool
}

type enrollmentReader interface {
	FindByID(ctx context.Context, id int64) (models.Enrollment, error)
}

// CreateAttendanceRequest records one day's attendance for an enrollment.
type CreateAttendanceRequest struct {
	EnrollmentID int64     `json:"enrollment_id" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	Status       string    `json:"status" validate:"required"`
	Notes        *string   `json:"notes,omitempty"`
}

// AttendanceService manages per-session attendance records.
type AttendanceService struct {
	repo        attendanceRepository
	enrollments enrollmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, enrollments enrollmentReader, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// Create records attendance. The enrollment must exist and the status must
// be a known value.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Attendance{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return models.Attendance{}, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}
	if _, err := s.enrollments.FindByID(ctx, req.EnrollmentID); err != nil {
		return models.Attendance{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment does not exist")
	}

	record, err := s.repo.Create(ctx, models.Attendance{
		EnrollmentID: req.EnrollmentID,
		Date:         req.Date,
		Status:       status,
		Notes:        req.Notes,
	})
	if err != nil {
		return models.Attendance{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance record")
	}
	return record, nil
}

// Get fetches an attendance record by id.
func (s *AttendanceService) Get(ctx context.Context, id int64) (models.Attendance, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Attendance{}, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	return record, nil
}

// List returns all attendance records in insertion order.
func (s *AttendanceService) List(ctx context.Context) []models.Attendance {
	return s.repo.List(ctx)
}

// ListByEnrollment returns the records belonging to one enrollment.
func (s *AttendanceService) ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Attendance {
	return s.repo.ListByEnrollment(ctx, enrollmentID)
}

// Update merges a partial patch into the record.
func (s *AttendanceService) Update(ctx context.Context, id int64, patch models.AttendancePatch) (models.Attendance, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Attendance{}, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}
	if patch.EnrollmentID != nil {
		if _, err := s.enrollments.FindByID(ctx, *patch.EnrollmentID); err != nil {
			return models.Attendance{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment does not exist")
		}
	}
	record, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Attendance{}, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	return record, nil
}

// Delete removes the attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	return nil
}
