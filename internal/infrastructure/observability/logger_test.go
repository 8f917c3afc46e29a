package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type recordingExporter struct {
	records []sdklog.Record
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func TestNewLogger_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "doctor-finder", "production")

	logger.Info().Str("provider_id", "p1").Msg("loaded")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "doctor-finder", line["service"])
	assert.Equal(t, "p1", line["provider_id"])
	assert.Equal(t, "loaded", line["message"])
	assert.Contains(t, line, "caller")
}

func TestOTelHook_EmitsRecords(t *testing.T) {
	var buf bytes.Buffer
	sink := &recordingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(sink)))
	logger := NewLogger(&buf, "doctor-finder", "production").Hook(NewOTelHook(provider.Logger("test")))

	logger.Warn().Msg("corpus fetch failed")
	logger.Log().Msg("no level")

	require.Len(t, sink.records, 1)
	assert.Equal(t, "corpus fetch failed", sink.records[0].Body().AsString())
	assert.Equal(t, otellog.SeverityWarn, sink.records[0].Severity())
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, otellog.SeverityInfo, severityFor(zerolog.InfoLevel))
	assert.Equal(t, otellog.SeverityError, severityFor(zerolog.ErrorLevel))
	assert.Equal(t, otellog.SeverityUndefined, severityFor(zerolog.NoLevel))
}
