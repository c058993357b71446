package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	*zap.Logger
}

type loggerOption struct {
	noStdout bool
}

type Option func(*loggerOption)

func NoStdout(option *loggerOption) {
	option.noStdout = true
}

// NewLogger creates a JSON logger that appends to filePath and, unless
// NoStdout is given, also writes to stdout.
func NewLogger(filePath string, level Level, options ...Option) (*Logger, error) {
	var option loggerOption
	for _, apply := range options {
		apply(&option)
	}

	logFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file failed")
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(logFile), level)}
	if !option.noStdout {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	return &Logger{zap.New(zapcore.NewTee(cores...))}, nil
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l.Logger.With(fields...)}
}
