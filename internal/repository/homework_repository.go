package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// HomeworkRepository persists homework assignments.
type HomeworkRepository struct {
	db *sqlx.DB
}

// NewHomeworkRepository creates a new homework repository.
func NewHomeworkRepository(db *sqlx.DB) *HomeworkRepository {
	return &HomeworkRepository{db: db}
}

// Create stores a homework record.
func (r *HomeworkRepository) Create(ctx context.Context, homework *models.Homework) (*models.Homework, error) {
	stored := *homework
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO homeworks (id, class_id, teacher_id, subject_id, subject_name, due_date, is_graded, created_at) VALUES (:id, :class_id, :teacher_id, :subject_id, :subject_name, :due_date, :is_graded, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, &stored); err != nil {
		return nil, fmt.Errorf("insert homework: %w", err)
	}
	return &stored, nil
}
