package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mecaflow/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the authenticated identity server-side, keyed by the
// opaque ID carried in the session cookie. Sessions expire after the idle
// TTL unless touched.
type SessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSessionStore(client redis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// TTL reports the idle timeout, which is also the cookie lifetime.
func (s *SessionStore) TTL() time.Duration { return s.ttl }

func (s *SessionStore) Create(ctx context.Context, caller domain.Caller) (string, error) {
	id := uuid.NewString()
	key := sessionKey(id)
	fields := map[string]any{
		"user_id": strconv.FormatUint(uint64(caller.UserID), 10),
		"role":    caller.Role.String(),
		"email":   caller.Email,
		"name":    caller.Name,
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Caller, error) {
	if id == "" {
		return domain.Caller{}, ErrSessionNotFound
	}
	values, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return domain.Caller{}, fmt.Errorf("load session: %w", err)
	}
	if len(values) == 0 {
		return domain.Caller{}, ErrSessionNotFound
	}
	userID, err := strconv.ParseUint(values["user_id"], 10, 64)
	if err != nil || userID == 0 {
		return domain.Caller{}, ErrSessionNotFound
	}
	role, ok := domain.ParseRoleName(values["role"])
	if !ok {
		return domain.Caller{}, ErrSessionNotFound
	}
	return domain.Caller{
		UserID: uint(userID),
		Role:   role,
		Email:  values["email"],
		Name:   values["name"],
	}, nil
}

// Touch extends the idle timeout; every gated request slides the window.
func (s *SessionStore) Touch(ctx context.Context, id string) error {
	ok, err := s.client.Expire(ctx, sessionKey(id), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func sessionKey(id string) string { return "session:" + id }
