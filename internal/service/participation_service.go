package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// ParticipationStats summarises the current draft for the session screen.
type ParticipationStats struct {
	TotalStudents     int     `json:"total_students"`
	ParticipatedCount int     `json:"participated_count"`
	ParticipationRate float64 `json:"participation_rate"`
}

// ParticipationService maintains the bounded participation multi-select of
// an active session: at most MaxParticipants students, each at most once,
// each with an optional free-text comment.
type ParticipationService struct {
	store  sessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewParticipationService constructs the participation service.
func NewParticipationService(store sessionStore, logger *zap.Logger) *ParticipationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipationService{store: store, logger: logger, now: time.Now}
}

// Toggle adds or removes a student from the participation draft. Adding a
// sixth student is rejected with ErrParticipationRange; the existing
// selection is left untouched.
func (s *ParticipationService) Toggle(ctx context.Context, deviceID, studentID string) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseParticipation {
		return nil, appErrors.ErrSessionPhase
	}

	if idx := state.ParticipationIndex(studentID); idx >= 0 {
		state.ParticipationDraft = append(state.ParticipationDraft[:idx], state.ParticipationDraft[idx+1:]...)
	} else {
		if len(state.ParticipationDraft) >= models.MaxParticipants {
			return nil, appErrors.ErrParticipationRange
		}
		eligible := false
		for _, student := range state.EligibleParticipants() {
			if student.ID == studentID {
				eligible = true
				break
			}
		}
		if !eligible {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not eligible for participation")
		}
		state.ParticipationDraft = append(state.ParticipationDraft, models.Participation{
			StudentID: studentID,
			Timestamp: s.now().UTC(),
		})
	}

	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save participation draft")
	}
	return state, nil
}

// SaveComment attaches or replaces the free-text comment of a student's
// participation entry. Saving against a student without an active entry is
// a no-op.
func (s *ParticipationService) SaveComment(ctx context.Context, deviceID, studentID, comment string) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseParticipation {
		return nil, appErrors.ErrSessionPhase
	}

	if idx := state.ParticipationIndex(studentID); idx >= 0 {
		state.ParticipationDraft[idx].Comment = comment
		if err := s.store.Put(ctx, state); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save comment")
		}
	}
	return state, nil
}

// Stats computes the participation summary for the current draft.
func (s *ParticipationService) Stats(ctx context.Context, deviceID string) (*ParticipationStats, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	total := len(state.EligibleParticipants())
	count := len(state.ParticipationDraft)
	rate := 0.0
	if total > 0 {
		rate = float64(count) / float64(total) * 100
	}
	return &ParticipationStats{
		TotalStudents:     total,
		ParticipatedCount: count,
		ParticipationRate: rate,
	}, nil
}
