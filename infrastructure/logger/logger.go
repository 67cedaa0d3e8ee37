package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Config defines logger configuration
type Config struct {
	Environment string // "development", "testing", "production"
	Level       string // "debug", "info", "warn", "error"
	// File logging configuration (only used in production)
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultConfig returns default logger configuration based on environment
func DefaultConfig(env string) *Config {
	switch env {
	case "production", "prod":
		return &Config{
			Environment: "production",
			Level:       "info",
			Filename:    "logs/taskman.log",
			MaxSize:     100,
			MaxBackups:  5,
			MaxAge:      30,
			Compress:    true,
		}
	default: // development, testing
		return &Config{
			Environment: env,
			Level:       "debug",
		}
	}
}

// Init initializes the global logger with the given configuration.
// Must be called before using the logger.
func Init(cfg *Config) error {
	var err error
	once.Do(func() {
		err = initLogger(cfg)
	})
	return err
}

// InitFromEnv initializes the global logger based on APP_ENV, with
// LOG_LEVEL and LOG_FILE overrides
func InitFromEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	cfg := DefaultConfig(env)

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Level = logLevel
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.Filename = logFile
	}

	return Init(cfg)
}

func initLogger(cfg *Config) error {
	var logger *zap.Logger
	var err error

	level := parseLogLevel(cfg.Level)

	if cfg.Environment == "production" {
		logger, err = newProductionLogger(cfg, level)
	} else {
		logger, err = newDevelopmentLogger(level)
	}
	if err != nil {
		return err
	}

	globalLogger = logger
	return nil
}

// newProductionLogger creates a JSON logger with lumberjack file rotation
func newProductionLogger(cfg *Config, level zapcore.Level) (*zap.Logger, error) {
	writer := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), level)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("environment", cfg.Environment),
			zap.String("service", "taskman"),
		),
	)

	return logger, nil
}

// newDevelopmentLogger creates a colored console logger
func newDevelopmentLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build(zap.AddCallerSkip(1))
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger instance, or a no-op logger if Init was
// never called
func Get() *zap.Logger {
	if globalLogger != nil {
		return globalLogger
	}
	return zap.NewNop()
}

// Named returns a named logger from the global logger
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// With returns a logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Debug logs a message at debug level
func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

// Info logs a message at info level
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Warn logs a message at warn level
func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

// Error logs a message at error level
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Fatal logs a message at fatal level and exits
func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
}
