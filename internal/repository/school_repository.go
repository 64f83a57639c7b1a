package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// SchoolRepository provides read access to schools, grades and classes.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository creates a new school repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// FindByID loads a school by id.
func (r *SchoolRepository) FindByID(ctx context.Context, id string) (*models.School, error) {
	const query = `SELECT id, cycle_id, name, code, created_at, updated_at FROM schools WHERE id = $1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, id); err != nil {
		return nil, err
	}
	return &school, nil
}

// ListClasses returns all classes of a school ordered by name.
func (r *SchoolRepository) ListClasses(ctx context.Context, schoolID string) ([]models.Class, error) {
	const query = `SELECT id, name, grade_id, school_id, main_teacher_id, created_at, updated_at FROM classes WHERE school_id = $1 ORDER BY name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, schoolID); err != nil {
		return nil, fmt.Errorf("list school classes: %w", err)
	}
	return classes, nil
}

// ListGrades returns the grades of a cycle ordered by name.
func (r *SchoolRepository) ListGrades(ctx context.Context, cycleID string) ([]models.Grade, error) {
	const query = `SELECT id, cycle_id, name FROM grades WHERE cycle_id = $1 ORDER BY name ASC`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, cycleID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}
