package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecordErrorInContext(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	ctx, span := tracer.Start(context.Background(), "op")
	RecordErrorInContext(ctx, errors.New("db gone"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, semconv.ExceptionEventName, events[0].Name)
}

func TestRecordErrorInContext_NilErrorRecordsNothing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	ctx, span := tracer.Start(context.Background(), "op")
	RecordErrorInContext(ctx, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events())
}

func TestRecordErrorInContext_NoSpanInContext(t *testing.T) {
	// Must not panic when the context carries no span.
	RecordErrorInContext(context.Background(), errors.New("db gone"))
}
