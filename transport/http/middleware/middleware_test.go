package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"roomstack/config"
	"roomstack/infras/otel"
	otelMocks "roomstack/infras/otel/mocks"
	"roomstack/shared"
	"roomstack/shared/cache"
	cacheMocks "roomstack/shared/cache/mocks"
	"roomstack/transport/http/middleware"
)

func echoActor() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(shared.Actor(r.Context())))
	})
}

func newMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	return middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache), mockCache
}

func TestActor(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})
	handler := mw.Actor(echoActor())

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"header names the actor", "front-desk", "front-desk"},
		{"surrounding spaces are dropped", "  night-audit ", "night-audit"},
		{"missing header acts as the system", "", "system"},
		{"long values are truncated", strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("X-Actor", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		req.Header.Set("User-Agent", "curl")

		return req
	}

	t.Run("first request opens the window", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:curl", gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), "limiter:10.0.0.1:curl", 1, 60).Return(nil)

		rec := httptest.NewRecorder()
		chiMiddleware.RealIP(mw.RateLimit()(echoActor())).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("direct clients are keyed by host without port", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().Get(gomock.Any(), "limiter:192.0.2.1:unknown", gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), "limiter:192.0.2.1:unknown", 1, 60).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.RemoteAddr = "192.0.2.1:1234"

		rec := httptest.NewRecorder()
		mw.RateLimit()(echoActor()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("requests over the limit are rejected", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				*value.(*int) = 2

				return nil
			})

		rec := httptest.NewRecorder()
		chiMiddleware.RealIP(mw.RateLimit()(echoActor())).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("redis failures let the request through", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		chiMiddleware.RealIP(mw.RateLimit()(echoActor())).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled limiter never touches redis", func(t *testing.T) {
		mw, _ := newMiddleware(t, &config.Config{})

		rec := httptest.NewRecorder()
		chiMiddleware.RealIP(mw.RateLimit()(echoActor())).ServeHTTP(rec, newRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTracingAndRequestLogger(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	mw := middleware.NewAppMiddleware(otel.NewWithProvider(provider), &config.Config{},
		cacheMocks.NewMockRedisCache(gomock.NewController(t)))

	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/bills", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	rec := httptest.NewRecorder()
	chiMiddleware.RealIP(mw.Tracing(mw.RequestLogger(failing))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /v1/bills", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	attributes := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attributes[kv.Key] = kv.Value
	}

	assert.Equal(t, "10.0.0.1", attributes["http.source"].AsString())
	assert.Equal(t, int64(http.StatusInternalServerError), attributes["http.status_code"].AsInt64())
}
