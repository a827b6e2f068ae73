// Package log provides the logging facade used across espedit.
// It wraps logrus so callers never import it directly.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field for use with LogWithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// SetDebug enables or disables debug-level output.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogWithFields returns an entry carrying the given structured fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return logger.WithFields(lf)
}

// Info logs a message at info level.
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message at debug level.
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a message at warning level.
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a message at error level.
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
