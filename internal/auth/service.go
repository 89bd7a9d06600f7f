package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Repository defines the data access the auth service needs: credential
// lookup, session rows, and password/last-login updates.
type Repository interface {
	GetCredentials(identifier string) (*Credentials, error)
	GetUserByID(userID int64) (*User, error)
	UpdateLastLogin(userID int64, at time.Time) error
	UpdatePassword(userID int64, passwordHash string) error

	CreateSession(session *Session) error
	GetSession(token string) (*Session, error)
	TouchSession(token string, at time.Time) error
	DeleteSession(token string) error
}

// EventPublisher is the slice of the event bus auth publishes to.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo              Repository
	bus               EventPublisher
	tokenGenerator    TokenGenerator
	sessionTimeout    time.Duration
	bcryptCost        int
	passwordMinLength int
	logger            *slog.Logger
}

type ServiceConfig struct {
	SessionTimeout    time.Duration
	BCryptCost        int
	PasswordMinLength int
}

func NewService(repo Repository, bus EventPublisher, tokenGen TokenGenerator, cfg ServiceConfig, logger *slog.Logger) *Service {
	cost := cfg.BCryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	timeout := cfg.SessionTimeout
	if timeout == 0 {
		timeout = 30 * time.Minute
	}
	minLength := cfg.PasswordMinLength
	if minLength == 0 {
		minLength = 8
	}
	return &Service{
		repo:              repo,
		bus:               bus,
		tokenGenerator:    tokenGen,
		sessionTimeout:    timeout,
		bcryptCost:        cost,
		passwordMinLength: minLength,
		logger:            logger,
	}
}

// SessionTimeout is exposed so the handler can set the cookie max-age.
func (s *Service) SessionTimeout() time.Duration {
	return s.sessionTimeout
}

// Login verifies credentials and creates a session row. Unknown
// identifier and wrong password both return ErrInvalidCredentials so a
// caller cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.repo.GetCredentials(dto.Identifier)
	if err != nil {
		s.logger.Warn("login failed: unknown identifier", "identifier", dto.Identifier)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", creds.UserID)
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &Session{
		ID:           token,
		UserID:       creds.UserID,
		IPAddress:    internal.ClientIPFromContext(ctx),
		UserAgent:    internal.UserAgentFromContext(ctx),
		LastActivity: now,
		ExpiresAt:    now.Add(s.sessionTimeout),
	}
	if err := s.repo.CreateSession(session); err != nil {
		s.logger.Error("failed to create session", "error", err, "user_id", creds.UserID)
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(creds.UserID, now); err != nil {
		s.logger.Error("failed to update last login", "error", err, "user_id", creds.UserID)
	}

	s.publish(ctx, events.NewUserLoggedInEvent(creds.UserID, session.IPAddress, session.UserAgent))

	s.logger.Info("user logged in", "user_id", creds.UserID, "username", creds.User.Username)

	user := creds.User
	return &LoginResponse{
		User:      &user,
		Token:     token,
		ExpiresIn: int64(s.sessionTimeout.Seconds()),
	}, nil
}

// VerifySession validates a session token: the row must exist, be
// unexpired, and belong to a still-active user. Last activity is
// refreshed on every successful check.
func (s *Service) VerifySession(token string) (*User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.repo.GetSession(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if session.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}

	user, err := s.repo.GetUserByID(session.UserID)
	if err != nil {
		return nil, ErrUserInactive
	}

	if err := s.repo.TouchSession(token, time.Now()); err != nil {
		s.logger.Error("failed to refresh session activity", "error", err)
	}

	return user, nil
}

// Logout deletes the session row. Deleting an unknown token is not an
// error.
func (s *Service) Logout(ctx context.Context, token string, userID int64) error {
	if err := s.repo.DeleteSession(token); err != nil {
		s.logger.Error("failed to delete session", "error", err, "user_id", userID)
		return err
	}
	s.publish(ctx, events.NewUserLoggedOutEvent(userID,
		internal.ClientIPFromContext(ctx), internal.UserAgentFromContext(ctx)))
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// ChangePassword verifies the current password before applying the new
// one under the password policy.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	creds, err := s.credentialsByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	return s.setPassword(userID, dto.NewPassword)
}

// IssueResetToken creates a short-lived signed token an admin can hand
// to a user for a password reset.
func (s *Service) IssueResetToken(userID int64) (string, error) {
	if _, err := s.repo.GetUserByID(userID); err != nil {
		return "", err
	}
	return s.tokenGenerator.GenerateResetToken(userID)
}

// ResetPassword redeems a reset token for a new policy-checked password.
func (s *Service) ResetPassword(dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	claims, err := s.tokenGenerator.ValidateResetToken(dto.Token)
	if err != nil {
		return ErrInvalidResetToken
	}

	return s.setPassword(claims.UserID, dto.NewPassword)
}

// HashPassword applies the password policy and returns the bcrypt hash.
func (s *Service) HashPassword(password string) (string, error) {
	if err := validation.ValidatePassword(password, s.passwordMinLength); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) setPassword(userID int64, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(userID, hash); err != nil {
		s.logger.Error("failed to update password", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("password updated", "user_id", userID)
	return nil
}

func (s *Service) credentialsByID(userID int64) (*Credentials, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCredentials(user.Username)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

// GenerateSessionToken generates a cryptographically secure random
// session token: 64 random bytes, hex encoded.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 64)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// JWTResetTokenGenerator signs reset tokens with HS256.
type JWTResetTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTResetTokenGenerator(secret string, ttl time.Duration) *JWTResetTokenGenerator {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &JWTResetTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (g *JWTResetTokenGenerator) GenerateResetToken(userID int64) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.Secret)
}

func (g *JWTResetTokenGenerator) ValidateResetToken(tokenString string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidResetToken
		}
		return nil, ErrInvalidResetToken
	}

	if claims, ok := token.Claims.(*ResetClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidResetToken
}
