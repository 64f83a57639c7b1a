package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// UserRepository provides access to tablet user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail loads a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, role, school_id, active, created_at, updated_at FROM users WHERE email = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, role, school_id, active, created_at, updated_at FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// HasDirectorAccess reports whether the user is an active director of the
// given school.
func (r *UserRepository) HasDirectorAccess(ctx context.Context, userID, schoolID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM users WHERE id = $1 AND school_id = $2 AND role = $3 AND active = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, schoolID, models.RoleDirector); err != nil {
		return false, err
	}
	return count > 0, nil
}
