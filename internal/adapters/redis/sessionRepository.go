package redis

import (
	"context"
	"fmt"
	"time"

	"forum/internal/core/errs"
	"forum/internal/core/session"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// SessionRepositoryRedis keeps one hash per session, expiring with the
// refresh token, plus a set of session ids per user.
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func sessionKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() }

func userSessionsKey(userID string) string { return userSessionsKeyPrefix + userID }

func (r *SessionRepositoryRedis) Create(ctx context.Context, s *session.Session) error {
	key := sessionKey(s.ID)
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"user_id":      s.UserID,
			"token_hash":   s.LastRefreshTokenHash,
			"initiated_at": s.InitiatedAt.UTC().Format(time.RFC3339Nano),
			"expires_at":   s.ExpiresAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.ExpireAt(ctx, key, s.ExpiresAt)
		pipe.SAdd(ctx, userSessionsKey(s.UserID), s.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("store session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SessionRepositoryRedis) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	vals, err := r.Client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, errs.ErrNotFound
	}

	initiatedAt, err := time.Parse(time.RFC3339Nano, vals["initiated_at"])
	if err != nil {
		return nil, fmt.Errorf("session %s: bad initiated_at: %w", id, err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("session %s: bad expires_at: %w", id, err)
	}

	return &session.Session{
		ID:                   id,
		UserID:               vals["user_id"],
		LastRefreshTokenHash: vals["token_hash"],
		InitiatedAt:          initiatedAt,
		ExpiresAt:            expiresAt,
	}, nil
}

// Extend rotates the token hash under WATCH, so a write to the session
// between the read and the EXEC aborts the swap.
func (r *SessionRepositoryRedis) Extend(ctx context.Context, id uuid.UUID, prevHash, tokenHash string, expiresAt time.Time) error {
	key := sessionKey(id)
	err := r.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "token_hash").Result()
		if err == redis.Nil {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		if current != prevHash {
			return errs.ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "token_hash", tokenHash, "expires_at", expiresAt.UTC().Format(time.RFC3339Nano))
			pipe.ExpireAt(ctx, key, expiresAt)
			return nil
		})
		return err
	}, key)
	if err == redis.TxFailedErr {
		return errs.ErrConflict
	}
	return err
}

func (r *SessionRepositoryRedis) Invalidate(ctx context.Context, id uuid.UUID) error {
	key := sessionKey(id)
	userID, err := r.Client.HGet(ctx, key, "user_id").Result()
	if err != nil && err != redis.Nil {
		return err
	}

	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if userID != "" {
			pipe.SRem(ctx, userSessionsKey(userID), id.String())
		}
		return nil
	})
	return err
}

// DeleteExpired drops the per-user index entries whose session hash has
// already expired out of Redis.
func (r *SessionRepositoryRedis) DeleteExpired(ctx context.Context) (int, error) {
	removed := 0
	iter := r.Client.Scan(ctx, 0, userSessionsKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		members, err := r.Client.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, err
		}
		for _, member := range members {
			n, err := r.Client.Exists(ctx, sessionKeyPrefix+member).Result()
			if err != nil {
				return removed, err
			}
			if n > 0 {
				continue
			}
			if err := r.Client.SRem(ctx, setKey, member).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, iter.Err()
}
