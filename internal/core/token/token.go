// Package token issues and validates the signed access and refresh tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
)

// AccessTokenTTL is fixed; refresh token lifetime is decided by the session.
const AccessTokenTTL = 20 * time.Minute

// Options is the immutable signing configuration.
type Options struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// AccessClaims is carried by bearer tokens.
type AccessClaims struct {
	jwt.StandardClaims
	Username string   `json:"name"`
	Roles    []string `json:"role"`
}

// RefreshClaims is carried by refresh tokens.
type RefreshClaims struct {
	jwt.StandardClaims
	SessionID string `json:"sessionId"`
}

type Service struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewService(opts Options) (*Service, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("token: empty signing secret")
	}
	key := make([]byte, len(opts.Secret))
	copy(key, opts.Secret)
	return &Service{
		key:      key,
		issuer:   opts.Issuer,
		audience: opts.Audience,
		now:      time.Now,
	}, nil
}

// WithClock returns a copy of the service that stamps tokens using now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	return &c
}

// CreateAccessToken signs a 20 minute token with one role claim per role.
func (s *Service) CreateAccessToken(username, userID string, roles []string) (string, error) {
	issuedAt := s.now()
	claims := &AccessClaims{
		StandardClaims: s.standardClaims(userID, issuedAt, issuedAt.Add(AccessTokenTTL)),
		Username:       username,
		Roles:          append([]string{}, roles...),
	}
	return s.sign(claims)
}

// CreateRefreshToken signs a token bound to a session that expires at expiresAt.
func (s *Service) CreateRefreshToken(sessionID, userID string, expiresAt time.Time) (string, error) {
	claims := &RefreshClaims{
		StandardClaims: s.standardClaims(userID, s.now(), expiresAt),
		SessionID:      sessionID,
	}
	return s.sign(claims)
}

// TryParseRefreshToken validates signature, issuer, audience and expiry.
// Any failure is reported as false with no further detail.
func (s *Service) TryParseRefreshToken(raw string) (*RefreshClaims, bool) {
	claims := &RefreshClaims{}
	if !s.parse(raw, claims, &claims.StandardClaims) || claims.SessionID == "" {
		return nil, false
	}
	return claims, true
}

// TryParseAccessToken applies the same rules to bearer tokens.
func (s *Service) TryParseAccessToken(raw string) (*AccessClaims, bool) {
	claims := &AccessClaims{}
	if !s.parse(raw, claims, &claims.StandardClaims) || claims.Username == "" {
		return nil, false
	}
	return claims, true
}

func (s *Service) standardClaims(subject string, issuedAt, expiresAt time.Time) jwt.StandardClaims {
	return jwt.StandardClaims{
		Id:        uuid.Must(uuid.NewV4()).String(),
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  s.audience,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
}

func (s *Service) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(raw string, claims jwt.Claims, std *jwt.StandardClaims) bool {
	if raw == "" {
		return false
	}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !tok.Valid {
		return false
	}
	if std.ExpiresAt == 0 {
		return false
	}
	return std.VerifyIssuer(s.issuer, true) && std.VerifyAudience(s.audience, true)
}
