package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")

	assert.Contains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithLocation(ctx, "annenberg")
	ctx = logging.WithMarker(ctx, "libhours-annenberg")
	ctx = logging.WithOperation(ctx, "fill")

	logging.FromContext(ctx).Info().Msg("filled placeholder")

	testLogger.AssertContains(t, `"location":"annenberg"`)
	testLogger.AssertContains(t, `"marker":"libhours-annenberg"`)
	testLogger.AssertContains(t, `"operation":"fill"`)
	testLogger.AssertContains(t, "filled placeholder")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestWithRunID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithRunID(ctx)
	id := logging.RunID(ctx)
	require.NotEmpty(t, id)

	// A second call keeps the first id.
	ctx = logging.WithRunID(ctx)
	assert.Equal(t, id, logging.RunID(ctx))

	logging.Ctx(ctx).Info().Msg("pass")
	testLogger.AssertContains(t, id)
	assert.Len(t, testLogger.Lines(), 1)
}

func TestWithFieldsAndError(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithFields(ctx, map[string]any{
		"institution": 1647,
		"fragment":    true,
	})
	ctx = logging.WithError(ctx, assert.AnError)
	assert.Equal(t, ctx, logging.WithError(ctx, nil))

	logging.FromContext(ctx).Warn().Msg("fetch failed")

	testLogger.AssertContains(t, `"institution":1647`)
	testLogger.AssertContains(t, `"fragment":true`)
	testLogger.AssertContains(t, assert.AnError.Error())
}

func TestNewLoggerFromConfig(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warning alias", "warning", zerolog.WarnLevel},
		{"disabled", "off", zerolog.Disabled},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"garbage defaults to info", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewLoggerFromConfigNil(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	logger := logging.NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "discard")
	t.Setenv("NO_COLOR", "1")

	cfg := logging.ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "discard", cfg.Output)
	assert.True(t, cfg.NoColor)

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, "error", logging.ConfigFromEnv().Level)
}
