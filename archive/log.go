package archive

import "github.com/decred/slog"

// log is the package logger; disabled until UseLogger is called
var log = slog.Disabled

// UseLogger sets the package logger
func UseLogger(logger slog.Logger) {
	log = logger
}
