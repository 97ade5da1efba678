package tracer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/hdbmap/geoquery/v1/logger"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewWithProvider(tp, logger.NewNop()), recorder
}

func TestSpanAttributesAndErrors(t *testing.T) {
	tr, recorder := newRecordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "resale.GetRecords")
	tr.SetAttributes(span, map[string]interface{}{
		"collection": "cleanedResale",
		"limit":      300,
		"towns":      []string{"BISHAN"},
	})
	tr.RecordErrorOnSpan(span, errors.New("storage unavailable"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "resale.GetRecords", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("collection", "cleanedResale"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("limit", 300))
	assert.Contains(t, spans[0].Attributes(), attribute.StringSlice("towns", []string{"BISHAN"}))
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "outbound")
	defer span.End()

	header := http.Header{}
	for k, v := range tr.GetCarrier(ctx) {
		header.Set(k, v)
	}
	require.NotEmpty(t, header.Get("traceparent"))

	extracted := tr.ExtractHTTP(context.Background(), header)
	_, child := tr.StartSpan(extracted, "inbound")
	defer child.End()

	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestFXModule(t *testing.T) {
	var tr *Tracer
	app := fxtest.New(t,
		fx.Supply(DefaultConfig()),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		FXModule,
		fx.Populate(&tr),
	)
	app.RequireStart()
	require.NotNil(t, tr)
	app.RequireStop()
}
