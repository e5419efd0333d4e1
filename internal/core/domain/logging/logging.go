package logging

import "context"

// LogEntry is a structured key/value attached to a log record.
type LogEntry struct {
	Key   string
	Value any
}

func Entry(k string, v any) LogEntry {
	return LogEntry{Key: k, Value: v}
}

// Err attaches the error under the "err" key. Error reporters pick it up as
// the exception of the record.
func Err(err error) LogEntry {
	return LogEntry{Key: "err", Value: err}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}
