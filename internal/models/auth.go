package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of scan code roles.
type Role string

const (
	RoleDirector Role = "director"
	RoleTeacher  Role = "teacher"
)

// ParseRole maps a raw scan token onto the closed role set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleDirector:
		return RoleDirector, true
	case RoleTeacher:
		return RoleTeacher, true
	default:
		return "", false
	}
}

// LoginRequest holds credentials for authenticating a director.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	SchoolID string `json:"school_id" validate:"required"`
}

// LoginResponse returns the issued tokens and user info.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         UserInfo  `json:"user"`
	IssuedAt     time.Time `json:"issued_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Role     Role    `json:"role"`
	SchoolID *string `json:"school_id,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string  `json:"user_id"`
	Role     Role    `json:"role"`
	Email    string  `json:"email"`
	SchoolID *string `json:"school_id,omitempty"`
	jwt.RegisteredClaims
}
