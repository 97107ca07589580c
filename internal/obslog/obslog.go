// Package obslog wires up the structured logger every command in this
// module shares, following the zap setup grafana-tempo's tempo-vulture
// command uses for its own logger global.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger at the given level ("debug", "info", "warn",
// "error"; unrecognised values fall back to "info").
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// QueryFields returns the structured fields logged around one evaluate
// call, kept in one place so every caller logs the same shape.
func QueryFields(rawQuery string, termCount, accLimit int, scratchBudget int64) []zap.Field {
	return []zap.Field{
		zap.String("query", rawQuery),
		zap.Int("term_count", termCount),
		zap.Int("acc_limit", accLimit),
		zap.Int64("scratch_budget", scratchBudget),
	}
}
