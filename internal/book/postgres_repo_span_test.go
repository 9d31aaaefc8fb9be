package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpanError(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")

	for _, err := range []error{ErrUnknownAuthors, errors.New("connection reset")} {
		_, span := tracer.Start(context.Background(), "book.create")
		_ = spanError(span, err)
		span.End()
	}

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code, "refusal is not a failure")
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "refused", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
