package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type userRepoStub struct {
	users    map[string]*models.User
	director map[string]bool
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*models.User), director: make(map[string]bool)}
}

func (r *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (r *userRepoStub) HasDirectorAccess(ctx context.Context, userID, schoolID string) (bool, error) {
	return r.director[userID+"|"+schoolID], nil
}

func newTestAuthService(repo *userRepoStub) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "yeko-pointage",
		Audience:           []string{"tablet"},
	})
}

func seedDirector(t *testing.T, repo *userRepoStub, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	schoolID := "school-1"
	user := &models.User{
		ID:           "dir-1",
		Email:        "director@example.com",
		PasswordHash: string(hash),
		FirstName:    "Ama",
		LastName:     "Kone",
		Role:         models.RoleDirector,
		SchoolID:     &schoolID,
		Active:       true,
	}
	repo.users[user.ID] = user
	repo.director["dir-1|school-1"] = true
	return user
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := newUserRepoStub()
	seedDirector(t, repo, "s3cret!")
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@example.com",
		Password: "s3cret!",
		SchoolID: "school-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "dir-1", res.User.ID)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDirector, claims.Role)
	assert.Equal(t, "dir-1", claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newUserRepoStub()
	seedDirector(t, repo, "s3cret!")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@example.com",
		Password: "wrong",
		SchoolID: "school-1",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newUserRepoStub())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
		SchoolID: "school-1",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginWrongSchool(t *testing.T) {
	repo := newUserRepoStub()
	seedDirector(t, repo, "s3cret!")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@example.com",
		Password: "s3cret!",
		SchoolID: "school-2",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newUserRepoStub()
	seedDirector(t, repo, "s3cret!")
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@example.com",
		Password: "s3cret!",
		SchoolID: "school-1",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), res.AccessToken)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	refreshed, err := svc.Refresh(context.Background(), res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}
