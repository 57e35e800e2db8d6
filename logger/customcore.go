package logger

import (
	"go.uber.org/zap/zapcore"
)

// customCore moves the "request_id" field to the end of every entry so the message and
// event fields stay readable in console output.
type customCore struct {
	zapcore.Core
}

// With adds structured context to the Core.
func (c *customCore) With(fields []zapcore.Field) zapcore.Core {
	return &customCore{c.Core.With(fields)}
}

// Write serializes the Entry and any Fields supplied at the log site and writes them to their destination.
func (c *customCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, reorderFields(fields))
}

// Check determines whether the supplied Entry should be logged.
func (c *customCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *customCore) Sync() error {
	return c.Core.Sync()
}

func reorderFields(fields []zapcore.Field) []zapcore.Field {
	reordered := make([]zapcore.Field, 0, len(fields))
	var trailing []zapcore.Field
	for _, field := range fields {
		if field.Key == "request_id" {
			trailing = append(trailing, field)
			continue
		}
		reordered = append(reordered, field)
	}
	return append(reordered, trailing...)
}
