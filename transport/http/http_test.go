package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roomstack/config"
	otelMocks "roomstack/infras/otel/mocks"
	roomDto "roomstack/internal/domains/room/model/dto"
	roomService "roomstack/internal/domains/room/service/mocks"
	roomHandler "roomstack/internal/handlers/room"
	cacheMocks "roomstack/shared/cache/mocks"
	transport "roomstack/transport/http"
	"roomstack/transport/http/middleware"
	"roomstack/transport/http/router"
)

func newServer(t *testing.T) (*transport.HTTP, *roomService.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	otel := otelMocks.NewOtel()

	rooms := roomService.NewMockRoom(ctrl)
	r := router.New(router.DomainHandlers{Room: roomHandler.New(rooms, otel)})
	mw := middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(ctrl))

	return transport.New(cfg, r, mw), rooms
}

func TestHealth(t *testing.T) {
	server, _ := newServer(t)
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	server.State = transport.ServerStateInGracePeriod

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"SERVER PREPARING TO SHUT DOWN"}`, rec.Body.String())
}

func TestRoutesAreVersioned(t *testing.T) {
	server, rooms := newServer(t)
	handler := server.Handler()

	rooms.EXPECT().Statuses().Return(roomDto.NewStatusesResponse())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/statuses", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/statuses", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
