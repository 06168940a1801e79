// Package logging provides the structured logging abstraction used by every
// component. Components depend on the Logger interface; the logrus-backed
// adapter is wired in by the container.
package logging

// Logger is a structured, levelled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger carrying err.
	WithError(err error) Logger
	// WithField returns a derived logger carrying a single field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a derived logger carrying all fields.
	WithFields(fields ...Field) Logger

	// Fatal logs at fatal level and exits the process.
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

var defaultLogger Logger = NewLogrusAdapter("info", "text")

// GetLogger returns the process default logger. Prefer injecting a Logger;
// this exists for the CLI bootstrap before configuration has been read.
func GetLogger() Logger {
	return defaultLogger
}

// SetDefault replaces the process default logger. A nil logger is ignored.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}
