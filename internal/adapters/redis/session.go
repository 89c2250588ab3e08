// internal/adapters/redis/session.go
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	fieldLoggedIn = "is_logged_in"
	fieldEmail    = "email"
	fieldUsername = "username"
)

// SessionStore keeps the device session flag in a redis hash.
type SessionStore struct {
	client *redis.Client
	key    string
}

func NewSessionStore(client *redis.Client, key string) *SessionStore {
	if key == "" {
		key = "user_session"
	}
	return &SessionStore{client: client, key: key}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	return s.client.HSet(ctx, s.key,
		fieldLoggedIn, strconv.FormatBool(session.IsLoggedIn),
		fieldEmail, session.Email,
		fieldUsername, session.Username,
	).Err()
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.Session{}, err
	}
	loggedIn, _ := strconv.ParseBool(vals[fieldLoggedIn])
	return domain.Session{
		IsLoggedIn: loggedIn,
		Email:      vals[fieldEmail],
		Username:   vals[fieldUsername],
	}, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// RevocationList remembers logged-out token ids until they would have expired.
type RevocationList struct {
	client *redis.Client
	prefix string
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client, prefix: "revoked:"}
}

func (r *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenID, 1, ttl).Err()
}

func (r *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, r.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var (
	_ ports.CachePort      = (*Cache)(nil)
	_ ports.SessionPort    = (*SessionStore)(nil)
	_ ports.RevocationPort = (*RevocationList)(nil)
)
