// Package logger provides structured logging for repool
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// contextKey is the type for context keys
type contextKey string

const (
	poolKey      contextKey = "pool"
	componentKey contextKey = "component"
	workloadKey  contextKey = "workload"
)

// ContextWithPool tags ctx with the pool name picked up by WithContext.
func ContextWithPool(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, poolKey, name)
}

// ContextWithComponent tags ctx with the emitting component.
func ContextWithComponent(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, componentKey, name)
}

// ContextWithWorkload tags ctx with a workload or worker identifier.
func ContextWithWorkload(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workloadKey, id)
}

// Config represents logger configuration
type Config struct {
	Level       string
	Development bool
	Encoding    string // json or console
	OutputPaths []string
}

// Init initializes the global logger
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = newLogger(cfg)
	})
	return err
}

// newLogger creates a new zap logger
func newLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	if cfg.Development {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	out := cfg.OutputPaths
	if len(out) == 0 {
		out = []string{"stdout"}
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Development,
		Encoding:         cfg.Encoding,
		EncoderConfig:    enc,
		OutputPaths:      out,
		ErrorOutputPaths: []string{"stderr"},
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// Get returns the global logger, initializing a default one if Init was
// never called.
func Get() *zap.Logger {
	if globalLogger == nil {
		if err := Init(Config{Level: "info", Encoding: "json"}); err != nil || globalLogger == nil {
			l, _ := zap.NewProduction()
			globalLogger = l
		}
	}
	return globalLogger
}

// WithContext returns the global logger enriched with any pool, component
// and workload tags carried by ctx.
func WithContext(ctx context.Context) *zap.Logger {
	log := Get()

	if name, ok := ctx.Value(poolKey).(string); ok {
		log = log.With(zap.String("pool", name))
	}
	if component, ok := ctx.Value(componentKey).(string); ok {
		log = log.With(zap.String("component", component))
	}
	if workload, ok := ctx.Value(workloadKey).(string); ok {
		log = log.With(zap.String("workload", workload))
	}
	return log
}

// Info logs an info message on the global logger
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Error logs an error message on the global logger
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}
