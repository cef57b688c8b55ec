package storage

import (
	"github.com/sirupsen/logrus"
)

// logger belongs to one storage value; debug output only happens with Config.Debugger set
type logger struct {
	entry           logrus.FieldLogger
	debuggerEnabled bool
}

func newLogger(base logrus.FieldLogger, serviceName string, enabled bool) *logger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &logger{
		entry: base.WithFields(logrus.Fields{
			"component": "storage",
			"service":   serviceName,
		}),
		debuggerEnabled: enabled,
	}
}

func (l *logger) debug(s string, args ...interface{}) {
	if l.debuggerEnabled {
		l.entry.Debugf(s, args...)
	}
}

// warn is always logged; it's used when a write succeeded but keeping the cache in sync didn't
func (l *logger) warn(err error, s string, args ...interface{}) {
	l.entry.WithError(err).Warnf(s, args...)
}
