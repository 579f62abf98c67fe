package logger

import "context"

// Entry records aggregatable metric fields (duration_ms, size, status)
// on top of whatever tracing fields live in the context.
//
// Example: logger.With(logger.Fields{logger.FieldDurationMs: 12}).Info(ctx, "done")
type Entry struct {
	fields Fields
}

// With creates a new Entry with the given metric fields.
func With(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// With adds more fields to an existing Entry.
func (e *Entry) With(fields Fields) *Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Entry{fields: merged}
}

// WithField adds a single field to the Entry.
func (e *Entry) WithField(key string, value interface{}) *Entry {
	return e.With(Fields{key: value})
}

// WithDuration adds a duration_ms field to the Entry.
func (e *Entry) WithDuration(ms int64) *Entry {
	return e.WithField(FieldDurationMs, ms)
}

// Debug logs the entry at Debug level with context fields.
func (e *Entry) Debug(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(map[string]interface{}(e.fields)).Debugf(format, args...)
}

// Info logs the entry at Info level with context fields.
func (e *Entry) Info(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(map[string]interface{}(e.fields)).Infof(format, args...)
}

// Warn logs the entry at Warn level with context fields.
func (e *Entry) Warn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(map[string]interface{}(e.fields)).Warnf(format, args...)
}

// Error logs the entry at Error level with context fields.
func (e *Entry) Error(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(map[string]interface{}(e.fields)).Errorf(format, args...)
}
