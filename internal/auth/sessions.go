package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 30 * 24 * time.Hour
)

// SessionResolverInterface resolves a bearer token to a user id. Token
// issuance itself lives with the external auth collaborator; this side only
// needs lookup (plus Issue for seeding and tests).
type SessionResolverInterface interface {
	Resolve(ctx context.Context, token string) (int64, bool, error)
}

type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions { return &Sessions{rdb: rdb} }

func (s *Sessions) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, userID, sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Sessions) Resolve(ctx context.Context, token string) (int64, bool, error) {
	id, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
