package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// EnrollmentRepository manages the in-memory enrollments table.
type EnrollmentRepository struct {
	table *Table[models.Enrollment]
}

// NewEnrollmentRepository constructs an empty EnrollmentRepository.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{table: NewTable[models.Enrollment]()}
}

// Create inserts a new enrollment. Referential checks against students and
// assignments live at the service layer; the table stays lenient.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment models.Enrollment) (models.Enrollment, error) {
	return r.table.Insert(func(id int64) models.Enrollment {
		enrollment.ID = id
		return enrollment
	}, nil)
}

// FindByID fetches an enrollment by primary key.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (models.Enrollment, error) {
	return r.table.Get(id)
}

// ListByStudent returns every enrollment of the given student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) []models.Enrollment {
	return r.table.Filter(func(e models.Enrollment) bool { return e.StudentID == studentID })
}

// ListByAssignment returns every enrollment registered in the given offering.
func (r *EnrollmentRepository) ListByAssignment(ctx context.Context, assignmentID int64) []models.Enrollment {
	return r.table.Filter(func(e models.Enrollment) bool { return e.CourseAssignmentID == assignmentID })
}

// CountByAssignment reports how many enrollments reference the assignment.
func (r *EnrollmentRepository) CountByAssignment(ctx context.Context, assignmentID int64) int {
	return len(r.ListByAssignment(ctx, assignmentID))
}

// List returns all enrollments in insertion order.
func (r *EnrollmentRepository) List(ctx context.Context) []models.Enrollment {
	return r.table.List()
}

// Update merges the patch into the stored enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, id int64, patch models.EnrollmentPatch) (models.Enrollment, error) {
	return r.table.Update(id, func(e models.Enrollment) models.Enrollment {
		if patch.StudentID != nil {
			e.StudentID = *patch.StudentID
		}
		if patch.CourseAssignmentID != nil {
			e.CourseAssignmentID = *patch.CourseAssignmentID
		}
		if patch.EnrollmentDate != nil {
			e.EnrollmentDate = *patch.EnrollmentDate
		}
		if patch.Status != nil {
			e.Status = *patch.Status
		}
		return e
	}, nil)
}

// Delete removes the enrollment and reports whether a row existed.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
