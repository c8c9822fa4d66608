package audio

import "github.com/decred/slog"

// log is the package logger; disabled until UseLogger is called
var log = slog.Disabled

// UseLogger sets the logger used by the audio subsystem
func UseLogger(logger slog.Logger) {
	log = logger
}
