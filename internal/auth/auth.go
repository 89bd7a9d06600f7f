package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of user roles. Checks against it are
// exhaustive; there is no dynamic permission table.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleManager:
		return true
	}
	return false
}

// CanReview reports whether the role may approve or reject requests.
func (r Role) CanReview() bool {
	return r == RoleAdmin
}

// User is the authenticated identity carried through request context.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// Session is a server-side login session identified by an opaque token.
type Session struct {
	ID           string
	UserID       int64
	IPAddress    string
	UserAgent    string
	LastActivity time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Credentials is the stored login record for an active user, fetched by
// username or email.
type Credentials struct {
	UserID       int64
	PasswordHash string
	User         User
}

// ResetClaims are the JWT claims on a password reset token.
type ResetClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator signs and validates password reset tokens.
type TokenGenerator interface {
	GenerateResetToken(userID int64) (string, error)
	ValidateResetToken(tokenString string) (*ResetClaims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidResetToken  = errors.New("invalid reset token")
)

type ctxKey string

const contextUserKey ctxKey = "authUser"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextUserKey).(*User)
	return user, ok
}
