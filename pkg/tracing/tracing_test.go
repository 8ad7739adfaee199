package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpansAreExported(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("mma-accounts-test", "test", exporter))

	ctx, parent := StartSpan(context.Background(), "parent", attribute.String("k", "v"))
	_, child := StartSpan(ctx, "child")
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Len(t, spans[0].Events, 1, "error recorded as event")
}

func TestNilSpanIsSafe(t *testing.T) {
	var sp *Span
	sp.SetAttributes(attribute.Int("n", 1))
	sp.SetStatusFromHTTPCode(500)
	sp.End()
	EndSpan(sp, nil)
}
