// Package logsink provides the LogSink external collaborator from
// spec.md §6: log(LogEntry) is best-effort and never alters resolution
// outcomes. MemorySink is adapted from the teacher's
// internal/log.MemoryLogger (ring of events for test assertions); ZapSink
// adapts go.uber.org/zap, the structured logger used throughout the
// retrieval pack's server-style repos.
package logsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity.
type Level string

// Levels.
const (
	LevelInfo  Level = "Info"
	LevelWarn  Level = "Warn"
	LevelError Level = "Error"
)

// LogEntry is one best-effort log record emitted by a resolver.
type LogEntry struct {
	EventType string
	Level     Level
	Message   string
	Data      map[string]any
}

// Sink is the LogSink collaborator contract.
type Sink interface {
	Log(entry LogEntry)
}

// NopSink discards every entry. Used as the default when a caller does not
// supply a sink, since logging is explicitly optional in the
// ResolutionContext (spec.md §3).
type NopSink struct{}

// Log implements Sink.
func (NopSink) Log(LogEntry) {}

// MemorySink records entries in order for test assertions, grounded on the
// teacher's internal/log.MemoryLogger.
type MemorySink struct {
	entries []LogEntry
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Log implements Sink.
func (m *MemorySink) Log(entry LogEntry) {
	m.entries = append(m.entries, entry)
}

// Entries returns every recorded entry, in order.
func (m *MemorySink) Entries() []LogEntry {
	return append([]LogEntry(nil), m.entries...)
}

// EntriesOfType returns every recorded entry with the given EventType.
func (m *MemorySink) EntriesOfType(eventType string) []LogEntry {
	var out []LogEntry
	for _, e := range m.entries {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// NewZapLogger builds a *zap.Logger from a level name and a format
// ("json" for production, anything else for a colorized console encoder),
// grounded on rdtc8822-debug-L1JGO-Whale/cmd/l1jgo/main.go's newLogger.
func NewZapLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}

// ZapSink adapts a *zap.Logger as a Sink, for production wiring where
// resolution activity should land in the same structured log stream as the
// rest of a hosting service.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps an existing zap logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Log implements Sink.
func (z *ZapSink) Log(entry LogEntry) {
	fields := make([]zap.Field, 0, len(entry.Data)+1)
	fields = append(fields, zap.String("eventType", entry.EventType))
	for k, v := range entry.Data {
		fields = append(fields, zap.Any(k, v))
	}
	switch entry.Level {
	case LevelWarn:
		z.logger.Warn(entry.Message, fields...)
	case LevelError:
		z.logger.Error(entry.Message, fields...)
	default:
		z.logger.Info(entry.Message, fields...)
	}
}
