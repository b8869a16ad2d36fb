package userapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forum/internal/core/auth"
	"forum/internal/core/errs"
	sessionEntity "forum/internal/core/session"
	"forum/internal/core/token"
	userEntity "forum/internal/core/user"
	sessionPort "forum/internal/ports/session"
	userPort "forum/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultRefreshTokenTTL is how long a session lives without a refresh.
const DefaultRefreshTokenTTL = 72 * time.Hour

// Tokens is the part of the token service used for accounts.
type Tokens interface {
	CreateAccessToken(username, userID string, roles []string) (string, error)
	CreateRefreshToken(sessionID, userID string, expiresAt time.Time) (string, error)
	TryParseRefreshToken(raw string) (*token.RefreshClaims, bool)
}

// LoginResult carries the access token for the body and the refresh token for the cookie.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// UserService manages accounts and refresh sessions
type UserService struct {
	UserRepository userPort.UserRepository
	Sessions       sessionPort.Store
	tokens         Tokens
	refreshTTL     time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewUserService wires the account use cases. A nil logger discards output.
func NewUserService(repo userPort.UserRepository, sessions sessionPort.Store, tokens Tokens, refreshTTL time.Duration, logger *zap.Logger) *UserService {
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		UserRepository: repo,
		Sessions:       sessions,
		tokens:         tokens,
		refreshTTL:     refreshTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// RegisterUser creates a ForumUser account
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error) {
	return s.createUser(ctx, username, email, password, auth.DefaultRoles)
}

// SeedAdmin creates the admin account once; an existing user name is left untouched.
func (s *UserService) SeedAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.createUser(ctx, username, email, password, []string{auth.RoleAdmin, auth.RoleForumUser})
	if errors.Is(err, errs.ErrUsernameTaken) {
		return nil
	}
	return err
}

func (s *UserService) createUser(ctx context.Context, username, email, password string, roles []string) (*userPort.UserDTO, error) {
	existing, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errs.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	u.SetRoles(roles)

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}

	return &userPort.UserDTO{
		ID:       created.ID.String(),
		Username: created.Username,
		Email:    created.Email,
	}, nil
}

// LoginUser checks the password and opens a new session
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	now := s.now()
	sessionID := uuid.Must(uuid.NewV4())
	result, err := s.issue(u, sessionID, now.Add(s.refreshTTL))
	if err != nil {
		return nil, err
	}

	err = s.Sessions.Create(ctx, &sessionEntity.Session{
		ID:                   sessionID,
		UserID:               u.ID.String(),
		LastRefreshTokenHash: sessionEntity.HashToken(result.RefreshToken),
		InitiatedAt:          now.UTC(),
		ExpiresAt:            result.RefreshExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return result, nil
}

// RefreshAccessToken rotates the refresh token of a live session and issues a new access token.
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (*LoginResult, error) {
	sess, claims, err := s.liveSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", claims.Subject, err)
	}

	result, err := s.issue(u, sess.ID, s.now().Add(s.refreshTTL))
	if err != nil {
		return nil, err
	}
	err = s.Sessions.Extend(ctx, sess.ID, sess.LastRefreshTokenHash, sessionEntity.HashToken(result.RefreshToken), result.RefreshExpiresAt)
	if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrNotFound) {
		// rotated or invalidated by a concurrent request
		return nil, errs.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("extend session %s: %w", sess.ID, err)
	}
	return result, nil
}

// LogoutUser removes the session so its refresh token can no longer be used.
func (s *UserService) LogoutUser(ctx context.Context, refreshToken string) error {
	claims, ok := s.tokens.TryParseRefreshToken(refreshToken)
	if !ok {
		return errs.ErrInvalidRefreshToken
	}
	sessionID, err := uuid.FromString(claims.SessionID)
	if err != nil {
		return errs.ErrInvalidRefreshToken
	}
	if err := s.Sessions.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("invalidate session %s: %w", sessionID, err)
	}
	return nil
}

func (s *UserService) liveSession(ctx context.Context, refreshToken string) (*sessionEntity.Session, *token.RefreshClaims, error) {
	claims, ok := s.tokens.TryParseRefreshToken(refreshToken)
	if !ok {
		return nil, nil, errs.ErrInvalidRefreshToken
	}
	sessionID, err := uuid.FromString(claims.SessionID)
	if err != nil {
		return nil, nil, errs.ErrInvalidRefreshToken
	}

	sess, err := s.Sessions.Get(ctx, sessionID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil, errs.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	if sess.Expired(s.now()) {
		if err := s.Sessions.Invalidate(ctx, sessionID); err != nil {
			s.logger.Warn("Error invalidating expired session", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
		return nil, nil, errs.ErrInvalidRefreshToken
	}
	if !sess.Matches(refreshToken) || sess.UserID != claims.Subject {
		return nil, nil, errs.ErrInvalidRefreshToken
	}
	return sess, claims, nil
}

func (s *UserService) issue(u *userEntity.User, sessionID uuid.UUID, refreshExpiresAt time.Time) (*LoginResult, error) {
	accessToken, err := s.tokens.CreateAccessToken(u.Username, u.ID.String(), u.RoleList())
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}
	refreshToken, err := s.tokens.CreateRefreshToken(sessionID.String(), u.ID.String(), refreshExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	return &LoginResult{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt.UTC(),
	}, nil
}
