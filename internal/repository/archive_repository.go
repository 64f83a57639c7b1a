package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// ArchiveRepository persists post-submission session summaries.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a new archive repository.
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create stores a session archive row.
func (r *ArchiveRepository) Create(ctx context.Context, archive *models.SessionArchive) error {
	if archive.ID == "" {
		archive.ID = uuid.NewString()
	}
	if archive.CreatedAt.IsZero() {
		archive.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO session_archives (id, device_id, class_id, subject_id, subject_name, teacher_id, teacher_name, date, student_count, absent_count, late_count, participant_count, homework_assigned, created_at)
		VALUES (:id, :device_id, :class_id, :subject_id, :subject_name, :teacher_id, :teacher_name, :date, :student_count, :absent_count, :late_count, :participant_count, :homework_assigned, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, archive); err != nil {
		return fmt.Errorf("insert session archive: %w", err)
	}
	return nil
}

// FindByID loads an archive by id.
func (r *ArchiveRepository) FindByID(ctx context.Context, id string) (*models.SessionArchive, error) {
	const query = `SELECT id, device_id, class_id, subject_id, subject_name, teacher_id, teacher_name, date, student_count, absent_count, late_count, participant_count, homework_assigned, created_at FROM session_archives WHERE id = $1`
	var archive models.SessionArchive
	if err := r.db.GetContext(ctx, &archive, query, id); err != nil {
		return nil, err
	}
	return &archive, nil
}

// List returns archives matching the filter, most recent first.
func (r *ArchiveRepository) List(ctx context.Context, filter models.SessionArchiveFilter) ([]models.SessionArchive, error) {
	base := "SELECT id, device_id, class_id, subject_id, subject_name, teacher_id, teacher_name, date, student_count, absent_count, late_count, participant_count, homework_assigned, created_at FROM session_archives WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT %d", limit)

	var archives []models.SessionArchive
	if err := r.db.SelectContext(ctx, &archives, query, args...); err != nil {
		return nil, fmt.Errorf("list session archives: %w", err)
	}
	return archives, nil
}
