package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Get returns the process-wide logger, building it on first use. APP_ENV
// selects structured JSON (production) or human-readable console output, and
// LOG_LEVEL overrides the default info level.
func Get() *zap.Logger {
	once.Do(func() {
		var cfg zap.Config
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.OutputPaths = []string{"stdout"}

		var level zapcore.Level
		if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
			level = zapcore.InfoLevel
		}
		cfg.Level.SetLevel(level)

		logger, err := cfg.Build()
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		instance = logger
	})
	return instance
}
