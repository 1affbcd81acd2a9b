package session

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bmimportados/backoffice-backend/pkg/config"
)

type fakeStore struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	if f.err != nil {
		return f.err
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) SessionKey(sessionID string) string {
	return "bo:session:" + sessionID
}

func testManager(store *fakeStore) *Manager {
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}
}

func TestCreateStoresSessionWithTTL(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)

	if err := m.Create(context.Background(), "sid-1", "user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if store.values["bo:session:sid-1"] != "user-1" {
		t.Fatalf("expected session value stored, got %v", store.values)
	}
	if store.ttls["bo:session:sid-1"] != time.Hour {
		t.Fatalf("expected ttl 1h, got %s", store.ttls["bo:session:sid-1"])
	}
}

func TestHasSessionLifecycle(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)
	ctx := context.Background()

	ok, err := m.HasSession(ctx, "sid-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected missing session")
	}

	if err := m.Create(ctx, "sid-1", "user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	ok, err = m.HasSession(ctx, "sid-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected active session")
	}

	if err := m.Revoke(ctx, "sid-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = m.HasSession(ctx, "sid-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected revoked session to be inactive")
	}
}

func TestManagerRejectsEmptySessionID(t *testing.T) {
	m := testManager(newFakeStore())
	ctx := context.Background()

	if err := m.Create(ctx, " ", "user-1"); err == nil {
		t.Fatalf("expected create to fail")
	}
	if err := m.Revoke(ctx, ""); err == nil {
		t.Fatalf("expected revoke to fail")
	}
	if _, err := m.HasSession(ctx, ""); err == nil {
		t.Fatalf("expected has session to fail")
	}
}

func TestNewManagerRequiresClientAndTTL(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{ExpirationMinutes: 60}); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Fatalf("expected unique session ids")
	}
}
