package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// ClassRepository provides persistence for classes and their rosters.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// FindByID loads a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, grade_id, school_id, main_teacher_id, created_at, updated_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListStudents returns the student roster of a class ordered by name.
func (r *ClassRepository) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT id, parent_id, id_number, first_name, last_name, full_name, class_id, created_at, updated_at FROM students WHERE class_id = $1 ORDER BY last_name ASC, first_name ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// ListTeachers returns the teachers assigned to a class.
func (r *ClassRepository) ListTeachers(ctx context.Context, classID string) ([]models.Teacher, error) {
	const query = `SELECT t.id, t.full_name, t.phone, t.email, t.created_at, t.updated_at FROM teachers t INNER JOIN teacher_classes tc ON tc.teacher_id = t.id WHERE tc.class_id = $1 ORDER BY t.full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, classID); err != nil {
		return nil, fmt.Errorf("list class teachers: %w", err)
	}
	return teachers, nil
}

// ListSchedules returns the weekly schedule windows of a class ordered by
// day and start time.
func (r *ClassRepository) ListSchedules(ctx context.Context, classID string) ([]models.ScheduleWindow, error) {
	const query = `SELECT id, class_id, subject_id, subject_name, teacher_id, day_of_week, start_time, end_time, room, created_at, updated_at FROM schedules WHERE class_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var windows []models.ScheduleWindow
	if err := r.db.SelectContext(ctx, &windows, query, classID); err != nil {
		return nil, fmt.Errorf("list class schedules: %w", err)
	}
	return windows, nil
}
