package repository

import (
	"context"

	"github.com/campuskit/campus-api/internal/models"
)

// GradeRepository manages the in-memory grades table.
type GradeRepository struct {
	table *Table[models.Grade]
}

// NewGradeRepository constructs an empty GradeRepository.
func NewGradeRepository() *GradeRepository {
	return &GradeRepository{table: NewTable[models.Grade]()}
}

// Create inserts a new graded item.
func (r *GradeRepository) Create(ctx context.Context, grade models.Grade) (models.Grade, error) {
	return r.table.Insert(func(id int64) models.Grade {
		grade.ID = id
		return grade
	}, nil)
}

// FindByID fetches a grade by primary key.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (models.Grade, error) {
	return r.table.Get(id)
}

// ListByEnrollment returns every graded item tied to the enrollment.
func (r *GradeRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Grade {
	return r.table.Filter(func(g models.Grade) bool { return g.EnrollmentID == enrollmentID })
}

// List returns all grades in insertion order.
func (r *GradeRepository) List(ctx context.Context) []models.Grade {
	return r.table.List()
}

// Update merges the patch into the stored grade.
func (r *GradeRepository) Update(ctx context.Context, id int64, patch models.GradePatch) (models.Grade, error) {
	return r.table.Update(id, func(g models.Grade) models.Grade {
		if patch.EnrollmentID != nil {
			g.EnrollmentID = *patch.EnrollmentID
		}
		if patch.AssignmentName != nil {
			g.AssignmentName = *patch.AssignmentName
		}
		if patch.Score != nil {
			g.Score = *patch.Score
		}
		if patch.MaxScore != nil {
			g.MaxScore = *patch.MaxScore
		}
		if patch.Weight != nil {
			g.Weight = *patch.Weight
		}
		if patch.Date != nil {
			g.Date = *patch.Date
		}
		return g
	}, nil)
}

// Delete removes the grade and reports whether a row existed.
func (r *GradeRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
