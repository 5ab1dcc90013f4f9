package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/env"
)

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(0.001), 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := limiter.Limit(next)

	ctx := env.WithCtx(context.Background(), newTestEnv())
	ctx = requestid.InjectRequestID(ctx, 12345)

	statuses := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", nil).WithContext(ctx)
		req.RemoteAddr = "192.0.2.1:52000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %d", statuses[2])
	}
}

func TestRateLimiterSetsRetryAfter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(0.001), 1)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := env.WithCtx(context.Background(), newTestEnv())
	ctx = requestid.InjectRequestID(ctx, 12345)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", nil).WithContext(ctx)
		req.RemoteAddr = "192.0.2.2:52000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			if rec.Header().Get("Retry-After") == "" {
				t.Error("limited response lacks Retry-After header")
			}
			return
		}
	}
	t.Fatal("second request was not limited")
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(0.001), 1)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := env.WithCtx(context.Background(), newTestEnv())
	ctx = requestid.InjectRequestID(ctx, 12345)

	for _, addr := range []string{"192.0.2.3:52000", "192.0.2.4:52000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", nil).WithContext(ctx)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected fresh client %s to pass, got %d", addr, rec.Code)
		}
	}
}
