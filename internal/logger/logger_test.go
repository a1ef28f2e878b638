package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"Cashline/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInitAppliesLevel(t *testing.T) {
	Init(&config.Config{
		App: config.AppConfig{Name: "cashline", Environment: "test"},
		Log: config.LogConfig{Level: "warn", Format: "json"},
	})

	var buf bytes.Buffer
	SetOutput(&buf)

	Info().Msg("ignorado")
	require.Zero(t, buf.Len())

	Warn().Str("code", "X").Msg("registrado")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "X", entry["code"])
	require.Equal(t, "cashline", entry["app"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), zerolog.New(&buf))

	FromContext(ctx).Info().Msg("req")
	require.Contains(t, buf.String(), "req")

	require.NotNil(t, FromContext(context.Background()))
}
