// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "kpai-test", Version: "v0.0.1"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("bot")
	l.Info().Int(FieldFrame, 30).Msg("tick")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bot", entry[FieldComponent])
	assert.Equal(t, "kpai-test", entry[FieldService])
	assert.Equal(t, "v0.0.1", entry[FieldVersion])
	assert.EqualValues(t, 30, entry[FieldFrame])
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "chatty", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	l := Base()
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len(), "debug entries must be filtered at info level")
}

func TestDerive_NilBuilder(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := Derive(nil)
	l.Info().Msg("plain")
	assert.Contains(t, buf.String(), `"message":"plain"`)

	buf.Reset()
	l = Derive(func(c *zerolog.Context) { *c = c.Int(FieldTeam, 2) })
	l.Info().Msg("team")
	assert.Contains(t, buf.String(), `"team":2`)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	require.NoError(t, SetLevel("error"))
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel(), "empty level is a no-op")

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}
