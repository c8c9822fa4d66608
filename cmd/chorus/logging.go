package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/decred/slog"

	"github.com/lixenwraith/chorus/archive"
	"github.com/lixenwraith/chorus/audio"
	"github.com/lixenwraith/chorus/service"
)

const maxLogSize = 10 * 1024 * 1024 // 10MB

// log is the command logger
var log = slog.Disabled

// setupLogging wires every subsystem logger to one backend
// Without debug, output goes to io.Discard; with debug, to path, rotated past maxLogSize
// Returns the open log file (nil when discarding)
func setupLogging(debug bool, path, level string) *os.File {
	var (
		w       io.Writer = io.Discard
		logFile *os.File
	)

	if debug {
		f, err := openLogFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		} else {
			w = f
			logFile = f
		}
	}

	lvl, ok := slog.LevelFromString(level)
	if !ok {
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = min(lvl, slog.LevelDebug)
	}

	backend := slog.NewBackend(w)
	newLogger := func(tag string) slog.Logger {
		l := backend.Logger(tag)
		l.SetLevel(lvl)
		return l
	}

	log = newLogger("CMD")
	audio.UseLogger(newLogger("AUDO"))
	archive.UseLogger(newLogger("ARCH"))
	service.UseLogger(newLogger("SVCS"))

	return logFile
}

// openLogFile creates the log directory and rotates an oversized file aside
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
