package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/infrastructure/config"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestStartSpan_NoProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "donation.create",
		WithAttribute("campaign_id", "abc"))
	require.NotNil(t, span)
	defer span.End()

	assert.NotNil(t, ctx)
	SetAttribute(span, SpanAttrAmount, 100.0)
	AddEvent(span, "slip_uploaded", "location", "bank-payment-slip/x.jpg")
	SetOK(span)
}

func TestStartServiceSpan_Naming(t *testing.T) {
	_, span := StartServiceSpan(context.Background(), "campaign", "approve")
	require.NotNil(t, span)
	span.End()
}

func TestGetTraceID_EmptyWithoutSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
