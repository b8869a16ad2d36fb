package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofrs/uuid"
)

// Session binds a refresh token to a user so it can be revoked before it expires.
type Session struct {
	ID                   uuid.UUID
	UserID               string
	LastRefreshTokenHash string
	InitiatedAt          time.Time
	ExpiresAt            time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Matches reports whether refreshToken is the last one issued for this session.
func (s *Session) Matches(refreshToken string) bool {
	return s.LastRefreshTokenHash == HashToken(refreshToken)
}

func HashToken(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return hex.EncodeToString(sum[:])
}
