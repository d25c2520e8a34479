package middleware_test

import (
	"errors"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		count         int64
		err           error
		wantCode      int
		wantRemaining string
	}{
		{name: "first request", count: 1, wantCode: http.StatusOK, wantRemaining: "2"},
		{name: "last allowed request", count: 3, wantCode: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", count: 4, wantCode: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "redis down fails open", err: errors.New("dial tcp: connection refused"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = true
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			cache.EXPECT().
				Increment(gomock.Any(), "limiter:203.0.113.9:curl/8.0", 60).
				Return(tt.count, tt.err)

			limiter := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache).RateLimit()
			handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
			req.Header.Set("User-Agent", "curl/8.0")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)

	limiter := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl)).RateLimit()
	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/guests", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
