package otel_test

import (
	"context"
	"errors"
	"hotelier/infras/otel"
	"hotelier/shared/failure"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, otel.Otel) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return recorder, otel.NewWithProvider(provider)
}

func attributeValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int64
		wantStatus codes.Code
	}{
		{
			name:       "conflict is recorded without error status",
			err:        failure.Conflict("room 101 is already occupied"),
			wantCode:   409,
			wantStatus: codes.Unset,
		},
		{
			name:       "plain error is a server failure",
			err:        errors.New("connection reset"),
			wantCode:   500,
			wantStatus: codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, tracer := newRecorder()

			_, scope := tracer.NewScope(context.Background(), "test", "test.Assign")
			scope.TraceError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			assert.Len(t, spans[0].Events(), 1)

			code, ok := attributeValue(spans[0].Attributes(), "failure.code")
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, code.AsInt64())
		})
	}
}

func TestScope_SetAttributes(t *testing.T) {
	recorder, tracer := newRecorder()

	_, scope := tracer.NewScope(context.Background(), "test", "test.Checkout")
	scope.SetAttributes(map[string]any{
		"booking.id":     int64(42),
		"booking.paid":   decimal.RequireFromString("150.50"),
		"booking.hourly": false,
	})
	scope.TraceIfError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	id, _ := attributeValue(spans[0].Attributes(), "booking.id")
	assert.Equal(t, int64(42), id.AsInt64())

	paid, _ := attributeValue(spans[0].Attributes(), "booking.paid")
	assert.Equal(t, "150.5", paid.AsString())

	hourly, _ := attributeValue(spans[0].Attributes(), "booking.hourly")
	assert.False(t, hourly.AsBool())

	assert.Empty(t, spans[0].Events())
}
