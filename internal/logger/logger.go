package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry written by the global logger.
const ServiceName = "gadgetshop-be"

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// Init replaces the global logger with one configured for env.
// "production" writes JSON to stdout, "test" only keeps warnings, and any
// other value gets the colored development console.
func Init(env string) error {
	l, err := configFor(env).Build(zap.AddCaller())
	if err != nil {
		return err
	}
	Replace(l.With(zap.String("service", ServiceName)))
	return nil
}

func configFor(env string) zap.Config {
	switch env {
	case "production":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		return cfg
	case "test":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		return cfg
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}
}

// Replace swaps the global logger and returns a func that restores the
// previous one.
func Replace(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()

	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

// L returns the global logger, building one from APP_ENV on first use.
// A logger that cannot be built falls back to a no-op.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	if err := Init(os.Getenv("APP_ENV")); err != nil {
		Replace(zap.NewNop())
	}
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
