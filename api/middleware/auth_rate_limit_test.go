package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: map[string]int64{}}
}

func (f *fakeLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeLimiterStore) RateLimitKey(scope string) string {
	return "bo:rl:" + scope
}

func limitedHandler(store rateLimiterStore, policy AuthRateLimitPolicy, bodySeen *string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*bodySeen = string(body)
		w.WriteHeader(http.StatusOK)
	})
	return AuthRateLimit(policy, store, nil)(next)
}

func postLogin(handler http.Handler, ip, email string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`","password":"x"}`))
	req.RemoteAddr = ip + ":41000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitPerEmail(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	var body string
	handler := limitedHandler(store, policy, &body)

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, "10.0.0.1", "carlos@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d unexpectedly limited: %d", i, rec.Code)
		}
	}
	if rec := postLogin(handler, "10.0.0.1", "carlos@example.com"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %d", rec.Code)
	}
	// A different account is unaffected.
	if rec := postLogin(handler, "10.0.0.1", "other@example.com"); rec.Code != http.StatusOK {
		t.Fatalf("other email should pass, got %d", rec.Code)
	}
}

func TestAuthRateLimitPerIP(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	var body string
	handler := limitedHandler(store, policy, &body)

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, "10.0.0.9", "a@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d unexpectedly limited: %d", i, rec.Code)
		}
	}
	if rec := postLogin(handler, "10.0.0.9", "b@example.com"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for hot ip, got %d", rec.Code)
	}
	if rec := postLogin(handler, "10.0.0.10", "a@example.com"); rec.Code != http.StatusOK {
		t.Fatalf("other ip should pass, got %d", rec.Code)
	}
}

func TestAuthRateLimitPreservesBodyForHandler(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	var body string
	handler := limitedHandler(store, policy, &body)

	postLogin(handler, "10.0.0.1", "carlos@example.com")
	if !strings.Contains(body, "carlos@example.com") {
		t.Fatalf("downstream handler lost the body: %q", body)
	}
}

func TestAuthRateLimitHashesEmailKeys(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	var body string
	handler := limitedHandler(store, policy, &body)

	postLogin(handler, "10.0.0.1", "carlos@example.com")
	for key := range store.counts {
		if strings.Contains(key, "carlos@example.com") {
			t.Fatalf("raw email leaked into key %q", key)
		}
	}
	if len(store.counts) != 1 {
		t.Fatalf("expected one counter, got %v", store.counts)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", 0, 5, 5)
	var body string
	handler := limitedHandler(store, policy, &body)

	for i := 0; i < 20; i++ {
		if rec := postLogin(handler, "10.0.0.1", "carlos@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("disabled policy must not limit, got %d", rec.Code)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("disabled policy must not touch the store: %v", store.counts)
	}
}
