package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// StudentRepository manages the in-memory students table.
type StudentRepository struct {
	table *Table[models.Student]
}

// NewStudentRepository constructs an empty StudentRepository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{table: NewTable[models.Student]()}
}

// Create inserts a new student profile. Student codes are unique; a duplicate
// returns ErrDuplicate.
func (r *StudentRepository) Create(ctx context.Context, student models.Student) (models.Student, error) {
	return r.table.Insert(
		func(id int64) models.Student {
			student.ID = id
			return student
		},
		func(existing models.Student) bool {
			return existing.StudentID == student.StudentID
		},
	)
}

// FindByID fetches a student by primary key.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (models.Student, error) {
	return r.table.Get(id)
}

// FindByStudentID scans for a matching student code.
func (r *StudentRepository) FindByStudentID(ctx context.Context, code string) (models.Student, error) {
	return r.table.Find(func(s models.Student) bool { return s.StudentID == code })
}

// FindByUserID returns the student profile owned by the given user.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID int64) (models.Student, error) {
	return r.table.Find(func(s models.Student) bool { return s.UserID == userID })
}

// List returns all students in insertion order.
func (r *StudentRepository) List(ctx context.Context) []models.Student {
	return r.table.List()
}

// Count reports the number of student rows.
func (r *StudentRepository) Count(ctx context.Context) int {
	return r.table.Len()
}

// Update merges the patch into the stored student; only supplied fields change.
func (r *StudentRepository) Update(ctx context.Context, id int64, patch models.StudentPatch) (models.Student, error) {
	var code string
	return r.table.Update(id,
		func(s models.Student) models.Student {
			if patch.StudentID != nil {
				s.StudentID = *patch.StudentID
			}
			if patch.Program != nil {
				s.Program = *patch.Program
			}
			if patch.YearLevel != nil {
				s.YearLevel = *patch.YearLevel
			}
			if patch.Status != nil {
				s.Status = *patch.Status
			}
			if patch.EnrollmentDate != nil {
				s.EnrollmentDate = *patch.EnrollmentDate
			}
			code = s.StudentID
			return s
		},
		func(other models.Student) bool {
			return patch.StudentID != nil && other.StudentID == code
		},
	)
}

// Delete removes the student and reports whether a row existed.
func (r *StudentRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
