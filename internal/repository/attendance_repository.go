package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// AttendanceRepository manages the in-memory attendance table.
type AttendanceRepository struct {
	table *Table[models.Attendance]
}

// NewAttendanceRepository constructs an empty AttendanceRepository.
func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{table: NewTable[models.Attendance]()}
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record models.Attendance) (models.Attendance, error) {
	return r.table.Insert(func(id int64) models.Attendance {
		record.ID = id
		return record
	}, nil)
}

// FindByID fetches an attendance record by primary key.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (models.Attendance, error) {
	return r.table.Get(id)
}

// ListByEnrollment returns every session record tied to the enrollment.
func (r *AttendanceRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Attendance {
	return r.table.Filter(func(a models.Attendance) bool { return a.EnrollmentID == enrollmentID })
}

// List returns all attendance records in insertion order.
func (r *AttendanceRepository) List(ctx context.Context) []models.Attendance {
	return r.table.List()
}

// Update merges the patch into the stored record.
func (r *AttendanceRepository) Update(ctx context.Context, id int64, patch models.AttendancePatch) (models.Attendance, error) {
	return r.table.Update(id, func(a models.Attendance) models.Attendance {
		if patch.EnrollmentID != nil {
			a.EnrollmentID = *patch.EnrollmentID
		}
		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.Notes != nil {
			a.Notes = patch.Notes
		}
		return a
	}, nil)
}

// Delete removes the record and reports whether a row existed.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
