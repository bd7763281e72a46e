package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// CallLogger returns a child logger with API-call context fields.
func CallLogger(base *zap.Logger, requestID, endpoint, method string) *zap.Logger {
	return base.With(
		zap.String("request_id", requestID),
		zap.String("endpoint", endpoint),
		zap.String("method", method),
	)
}
