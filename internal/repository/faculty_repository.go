package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// FacultyRepository manages the in-memory faculty table.
type FacultyRepository struct {
	table *Table[models.Faculty]
}

// NewFacultyRepository constructs an empty FacultyRepository.
func NewFacultyRepository() *FacultyRepository {
	return &FacultyRepository{table: NewTable[models.Faculty]()}
}

// Create inserts a new faculty profile. Faculty codes are unique; a duplicate
// returns ErrDuplicate.
func (r *FacultyRepository) Create(ctx context.Context, faculty models.Faculty) (models.Faculty, error) {
	return r.table.Insert(
		func(id int64) models.Faculty {
			faculty.ID = id
			return faculty
		},
		func(existing models.Faculty) bool {
			return existing.FacultyID == faculty.FacultyID
		},
	)
}

// FindByID fetches a faculty member by primary key.
func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (models.Faculty, error) {
	return r.table.Get(id)
}

// FindByFacultyID scans for a matching faculty code.
func (r *FacultyRepository) FindByFacultyID(ctx context.Context, code string) (models.Faculty, error) {
	return r.table.Find(func(f models.Faculty) bool { return f.FacultyID == code })
}

// FindByUserID returns the faculty profile owned by the given user.
func (r *FacultyRepository) FindByUserID(ctx context.Context, userID int64) (models.Faculty, error) {
	return r.table.Find(func(f models.Faculty) bool { return f.UserID == userID })
}

// List returns all faculty in insertion order.
func (r *FacultyRepository) List(ctx context.Context) []models.Faculty {
	return r.table.List()
}

// Count reports the number of faculty rows.
func (r *FacultyRepository) Count(ctx context.Context) int {
	return r.table.Len()
}

// Update merges the patch into the stored faculty; only supplied fields change.
func (r *FacultyRepository) Update(ctx context.Context, id int64, patch models.FacultyPatch) (models.Faculty, error) {
	var code string
	return r.table.Update(id,
		func(f models.Faculty) models.Faculty {
			if patch.FacultyID != nil {
				f.FacultyID = *patch.FacultyID
			}
			if patch.Department != nil {
				f.Department = *patch.Department
			}
			if patch.Position != nil {
				f.Position = *patch.Position
			}
			if patch.JoinDate != nil {
				f.JoinDate = *patch.JoinDate
			}
			if patch.Status != nil {
				f.Status = *patch.Status
			}
			code = f.FacultyID
			return f
		},
		func(other models.Faculty) bool {
			return patch.FacultyID != nil && other.FacultyID == code
		},
	)
}

// Delete removes the faculty member and reports whether a row existed.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
