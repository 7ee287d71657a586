package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// CourseRepository manages the in-memory courses table.
type CourseRepository struct {
	table *Table[models.Course]
}

// NewCourseRepository constructs an empty CourseRepository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{table: NewTable[models.Course]()}
}

// Create inserts a new course. Course codes are unique; a duplicate returns
// ErrDuplicate.
func (r *CourseRepository) Create(ctx context.Context, course models.Course) (models.Course, error) {
	return r.table.Insert(
		func(id int64) models.Course {
			course.ID = id
			return course
		},
		func(existing models.Course) bool {
			return existing.Code == course.Code
		},
	)
}

// FindByID fetches a course by primary key.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (models.Course, error) {
	return r.table.Get(id)
}

// FindByCode scans for a matching course code.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (models.Course, error) {
	return r.table.Find(func(c models.Course) bool { return c.Code == code })
}

// List returns all courses in insertion order.
func (r *CourseRepository) List(ctx context.Context) []models.Course {
	return r.table.List()
}

// Update merges the patch into the stored course; only supplied fields change.
func (r *CourseRepository) Update(ctx context.Context, id int64, patch models.CoursePatch) (models.Course, error) {
	var code string
	return r.table.Update(id,
		func(c models.Course) models.Course {
			if patch.Code != nil {
				c.Code = *patch.Code
			}
			if patch.Title != nil {
				c.Title = *patch.Title
			}
			if patch.Description != nil {
				c.Description = patch.Description
			}
			if patch.Credits != nil {
				c.Credits = *patch.Credits
			}
			if patch.Department != nil {
				c.Department = *patch.Department
			}
			if patch.Status != nil {
				c.Status = *patch.Status
			}
			code = c.Code
			return c
		},
		func(other models.Course) bool {
			return patch.Code != nil && other.Code == code
		},
	)
}

// Delete removes the course and reports whether a row existed.
func (r *CourseRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
