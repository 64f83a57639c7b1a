package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// ParticipationRepository persists participation sessions.
type ParticipationRepository struct {
	db *sqlx.DB
}

// NewParticipationRepository creates a new participation repository.
func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

type participationSessionRow struct {
	ID        string    `db:"id"`
	ClassID   string    `db:"class_id"`
	SubjectID string    `db:"subject_id"`
	Date      time.Time `db:"date"`
	CreatedAt time.Time `db:"created_at"`
}

type participationRow struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	StudentID string    `db:"student_id"`
	Timestamp time.Time `db:"timestamp"`
	Comment   string    `db:"comment"`
}

// CreateSession stores a participation session and its entries in one
// transaction, stamping the backend-assigned session id onto each entry.
func (r *ParticipationRepository) CreateSession(ctx context.Context, session *models.ParticipationSession) (*models.ParticipationSession, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create participation session: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stored := *session
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	sessionRow := participationSessionRow{
		ID:        stored.ID,
		ClassID:   stored.ClassID,
		SubjectID: stored.SubjectID,
		Date:      stored.Date,
		CreatedAt: time.Now().UTC(),
	}
	if _, err = tx.NamedExecContext(ctx, `INSERT INTO participation_sessions (id, class_id, subject_id, date, created_at) VALUES (:id, :class_id, :subject_id, :date, :created_at)`, &sessionRow); err != nil {
		return nil, fmt.Errorf("insert participation session: %w", err)
	}

	for i := range stored.Participations {
		p := &stored.Participations[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.SessionID = stored.ID
		row := participationRow{
			ID:        p.ID,
			SessionID: p.SessionID,
			StudentID: p.StudentID,
			Timestamp: p.Timestamp,
			Comment:   p.Comment,
		}
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO participations (id, session_id, student_id, timestamp, comment) VALUES (:id, :session_id, :student_id, :timestamp, :comment)`, &row); err != nil {
			return nil, fmt.Errorf("insert participation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit participation session: %w", err)
	}
	return &stored, nil
}
