// Package logger is the process-wide structured logger.
//
// Call sites pass a message followed by alternating key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to find case", err)
//
// A bare error (without a key) is attached as the "error" field.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// exitFunc is swapped in tests so Fatal does not terminate the test binary.
	exitFunc = os.Exit
)

// Init configures the global logger for the given application environment.
// "development" and "local" use a human readable console writer at debug level,
// everything else writes JSON at info level.
func Init(environment string) {
	env := strings.ToLower(strings.TrimSpace(environment))

	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if env == "development" || env == "local" || env == "" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	SetOutput(out, level)
}

// SetOutput replaces the writer and minimum level of the global logger.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	write(zerolog.DebugLevel, msg, args)
}

func Info(msg string, args ...any) {
	write(zerolog.InfoLevel, msg, args)
}

func Warn(msg string, args ...any) {
	write(zerolog.WarnLevel, msg, args)
}

func Error(msg string, args ...any) {
	write(zerolog.ErrorLevel, msg, args)
}

// Fatal logs at fatal level and exits the process.
func Fatal(msg string, args ...any) {
	write(zerolog.FatalLevel, msg, args)
	exitFunc(1)
}

func write(level zerolog.Level, msg string, args []any) {
	mu.RLock()
	l := log
	mu.RUnlock()

	// WithLevel never exits or panics on its own, Fatal handles that.
	ev := l.WithLevel(level)
	if ev == nil {
		return
	}

	applyFields(ev, args)
	ev.Msg(msg)
}

func applyFields(ev *zerolog.Event, args []any) {
	extra := 0
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			ev.AnErr("error", v)
			continue
		case string:
			if i+1 < len(args) {
				if err, ok := args[i+1].(error); ok {
					ev.AnErr(v, err)
				} else {
					ev.Interface(v, args[i+1])
				}
				i++
				continue
			}
		}

		ev.Interface(fmt.Sprintf("arg%d", extra), args[i])
		extra++
	}
}
