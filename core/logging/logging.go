package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger. Packages that accept their own logger
// fall back to it when none is supplied.
var Logger *zap.Logger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	Logger = l
}

// SetLogger replaces the process-wide logger; nil installs a no-op logger
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}
