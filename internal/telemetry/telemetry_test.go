package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestProviderExportsSpansAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, WithServiceName("vecwrap-test"))
	require.NoError(t, err)

	ctx := context.Background()
	_, span := p.Tracer().Start(ctx, "broadcast vnorm")
	span.End()
	assert.Contains(t, buf.String(), "broadcast vnorm", "spans are written when they end")

	counter, err := p.Meter().Int64Counter("vecwrap.broadcast.calls")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	require.NoError(t, p.Shutdown(ctx))
	out := buf.String()
	assert.Contains(t, out, "vecwrap.broadcast.calls")
	assert.Contains(t, out, "vecwrap-test")
}

func TestInstall(t *testing.T) {
	prevTraces, prevMetrics := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTraces)
		otel.SetMeterProvider(prevMetrics)
	})

	var buf bytes.Buffer
	p, err := New(&buf, WithPrettyPrint())
	require.NoError(t, err)
	p.Install()

	assert.Same(t, p.traces, otel.GetTracerProvider())
	assert.Same(t, p.metrics, otel.GetMeterProvider())
	require.NoError(t, p.Shutdown(context.Background()))
}
