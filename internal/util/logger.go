package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

func InitLogger(logLevel string) {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)
	Logger, _ = config.Build()
}

// Error returns a zap.Field for logging an error.
func Error(err error) zap.Field {
	return zap.Error(err)
}

// String returns a zap.Field for logging a string value.
func String(key, value string) zap.Field {
	return zap.String(key, value)
}
