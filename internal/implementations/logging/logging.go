package logging

import (
	"context"
	"passreset/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorReporter receives every Error record. *sentry.Hub implements it.
type ErrorReporter interface {
	CaptureException(exception error) *sentry.EventID
	CaptureMessage(message string) *sentry.EventID
}

type ZapLogger struct {
	logger   *zap.Logger
	sugar    *zap.SugaredLogger
	reporter ErrorReporter
}

func NewZapLogger(level string) (*ZapLogger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return newZapLogger(logger), nil
}

func newZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger, sugar: logger.Sugar()}
}

// WithErrorReporter forwards Error records to the reporter as well.
func (l *ZapLogger) WithErrorReporter(reporter ErrorReporter) *ZapLogger {
	return &ZapLogger{logger: l.logger, sugar: l.sugar, reporter: reporter}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, prepareArgs(entries...)...)
	if l.reporter == nil {
		return
	}
	for _, entry := range entries {
		if err, ok := entry.Value.(error); ok {
			l.reporter.CaptureException(err)
			return
		}
	}
	l.reporter.CaptureMessage(msg)
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		args = append(args, e.Key, e.Value)
	}
	return args
}
