// Package log provides leveled, structured logging for sortid packages,
// built on go-kit's logfmt/JSON loggers.
package log

import (
	"github.com/go-kit/kit/log/level"
)

// Logger is the minimal logging interface shared across packages.
type Logger interface {
	Log(keyvals ...interface{}) error
}

func Debug(logger Logger) Logger { return level.Debug(logger) }
func Info(logger Logger) Logger  { return level.Info(logger) }
