package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mecaflow/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionStoreForTest(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, ttl), mr
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store, _ := newSessionStoreForTest(t, 30*time.Minute)
	ctx := context.Background()

	caller := domain.Caller{UserID: 7, Role: domain.RoleEmployee, Email: "ana@mecaflow.com", Name: "Ana"}
	id, err := store.Create(ctx, caller)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded != caller {
		t.Fatalf("caller mismatch: %+v vs %+v", loaded, caller)
	}
}

func TestSessionStoreIdleExpiry(t *testing.T) {
	store, mr := newSessionStoreForTest(t, 30*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.Caller{UserID: 1, Role: domain.RoleClient, Email: "c@x.com", Name: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(31 * time.Minute)
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionStoreTouchSlidesWindow(t *testing.T) {
	store, mr := newSessionStoreForTest(t, 30*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.Caller{UserID: 1, Role: domain.RoleAdministrator, Email: "a@x.com", Name: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(20 * time.Minute)
	if err := store.Touch(ctx, id); err != nil {
		t.Fatalf("touch: %v", err)
	}
	mr.FastForward(20 * time.Minute)

	if _, err := store.Get(ctx, id); err != nil {
		t.Fatalf("expected touched session to survive, got %v", err)
	}
}

func TestSessionStoreDestroyAndMissing(t *testing.T) {
	store, _ := newSessionStoreForTest(t, 30*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.Caller{UserID: 2, Role: domain.RoleClient, Email: "c@x.com", Name: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected destroyed session to be gone, got %v", err)
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected empty id to miss, got %v", err)
	}
	if err := store.Touch(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected touch on missing session to fail, got %v", err)
	}
}
