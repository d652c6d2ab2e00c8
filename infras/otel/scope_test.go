package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"roomstack/infras/otel"
	"roomstack/shared/constant"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer(constant.OtelServiceScopeName).Start(context.Background(), "service.Create")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"booking.id":     "b-1",
		"booking.adults": 2,
		"bill.nights":    int64(3),
		"room.rate":      120.5,
		"room.features":  []string{"TV", "WiFi"},
		"room.available": true,
	})
	scope.AddEvent("booking created")
	scope.TraceIfError(nil)
	scope.TraceError(errors.New("room is already booked"))
	scope.End()

	spans := recorder.Ended()
	assert.Len(t, spans, 1)
	assert.Equal(t, "service.Create", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Attributes(), 6)
	assert.Len(t, spans[0].Events(), 2)
}
