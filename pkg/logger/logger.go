package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName добавляется в каждую запись лога
const ServiceName = "blitz-entry"

// NewLogger создает zap логгер.
// "dev" и "prod" выбирают пресет, а уровни zap ("debug", "warn", ...) дают JSON логгер с этим уровнем.
func NewLogger(level string) (*zap.Logger, error) {
	cfg, err := configFor(level)
	if err != nil {
		return nil, err
	}

	return cfg.Build(zap.Fields(zap.String("service", ServiceName)))
}

func configFor(level string) (zap.Config, error) {
	switch level {
	case "", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg, nil
	case "prod":
		return zap.NewProductionConfig(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("unknown log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg, nil
}
