package logsink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/logsink"
)

func TestMemorySink_RecordsEntriesInOrderAndFiltersByType(t *testing.T) {
	sink := logsink.NewMemorySink()
	sink.Log(logsink.LogEntry{EventType: "DamageResolver", Level: logsink.LevelInfo, Message: "a"})
	sink.Log(logsink.LogEntry{EventType: "NullificationProtocol", Level: logsink.LevelWarn, Message: "b"})
	sink.Log(logsink.LogEntry{EventType: "DamageResolver", Level: logsink.LevelInfo, Message: "c"})

	assert.Len(t, sink.Entries(), 3)
	damageOnly := sink.EntriesOfType("DamageResolver")
	require.Len(t, damageOnly, 2)
	assert.Equal(t, "a", damageOnly[0].Message)
	assert.Equal(t, "c", damageOnly[1].Message)
}

func TestNopSink_DiscardsEntries(t *testing.T) {
	assert.NotPanics(t, func() {
		logsink.NopSink{}.Log(logsink.LogEntry{EventType: "x"})
	})
}

func TestNewZapLogger_BuildsForBothFormats(t *testing.T) {
	console, err := logsink.NewZapLogger("info", "console")
	require.NoError(t, err)
	require.NotNil(t, console)

	jsonLogger, err := logsink.NewZapLogger("warn", "json")
	require.NoError(t, err)
	require.NotNil(t, jsonLogger)

	sink := logsink.NewZapSink(console)
	assert.NotPanics(t, func() {
		sink.Log(logsink.LogEntry{EventType: "DamageResolver", Level: logsink.LevelInfo, Message: "hit", Data: map[string]any{"amount": 3}})
	})
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := logsink.NewZapLogger("not-a-level", "console")
	require.NoError(t, err)
	require.NotNil(t, logger)
}
