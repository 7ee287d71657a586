package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// CourseAssignmentRepository manages the in-memory course assignments table.
type CourseAssignmentRepository struct {
	table *Table[models.CourseAssignment]
}

// NewCourseAssignmentRepository constructs an empty CourseAssignmentRepository.
func NewCourseAssignmentRepository() *CourseAssignmentRepository {
	return &CourseAssignmentRepository{table: NewTable[models.CourseAssignment]()}
}

// Create inserts a new assignment. A course may carry multiple assignments
// across terms, so no uniqueness applies.
func (r *CourseAssignmentRepository) Create(ctx context.Context, assignment models.CourseAssignment) (models.CourseAssignment, error) {
	return r.table.Insert(func(id int64) models.CourseAssignment {
		assignment.ID = id
		return assignment
	}, nil)
}

// FindByID fetches an assignment by primary key.
func (r *CourseAssignmentRepository) FindByID(ctx context.Context, id int64) (models.CourseAssignment, error) {
	return r.table.Get(id)
}

// ListByCourse returns every assignment offering the given course.
func (r *CourseAssignmentRepository) ListByCourse(ctx context.Context, courseID int64) []models.CourseAssignment {
	return r.table.Filter(func(a models.CourseAssignment) bool { return a.CourseID == courseID })
}

// ListByFaculty returns every assignment taught by the given faculty member.
func (r *CourseAssignmentRepository) ListByFaculty(ctx context.Context, facultyID int64) []models.CourseAssignment {
	return r.table.Filter(func(a models.CourseAssignment) bool { return a.FacultyID == facultyID })
}

// List returns all assignments in insertion order.
func (r *CourseAssignmentRepository) List(ctx context.Context) []models.CourseAssignment {
	return r.table.List()
}

// Update merges the patch into the stored assignment.
func (r *CourseAssignmentRepository) Update(ctx context.Context, id int64, patch models.CourseAssignmentPatch) (models.CourseAssignment, error) {
	return r.table.Update(id, func(a models.CourseAssignment) models.CourseAssignment {
		if patch.CourseID != nil {
			a.CourseID = *patch.CourseID
		}
		if patch.FacultyID != nil {
			a.FacultyID = *patch.FacultyID
		}
		if patch.Semester != nil {
			a.Semester = *patch.Semester
		}
		if patch.Year != nil {
			a.Year = *patch.Year
		}
		return a
	}, nil)
}

// Delete removes the assignment and reports whether a row existed.
func (r *CourseAssignmentRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
