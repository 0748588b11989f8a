// Package log is a zerolog facade. Events can go to the console, to a JSON
// journal kept in SQLite, or both. The package logger is a no-op until
// SetStd or Init is called.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	logger  = zerolog.Nop()
	console io.Writer
	level   = zerolog.InfoLevel
	jrnl    *journal

	// ErrNotInitialized is returned by the journal queries before Init.
	ErrNotInitialized = errors.New("log: journal not initialized, call log.Init() first")
)

// Fixed width, so stored timestamps compare correctly as strings.
const timeFieldFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SetStd sends events to stderr in zerolog's console format.
func SetStd(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if debug {
		level = zerolog.DebugLevel
	}
	rebuild()
}

// Init opens (or creates) the SQLite journal at path and tees every event
// into it.
func Init(path string) error {
	if path == "" {
		return fmt.Errorf("log: journal path is empty")
	}
	mu.Lock()
	defer mu.Unlock()
	if jrnl != nil {
		return fmt.Errorf("log: journal already open at %s", jrnl.path)
	}
	j, err := openJournal(path)
	if err != nil {
		return err
	}
	jrnl = j
	rebuild()
	return nil
}

// Close flushes and closes the journal. The console output, if any, stays.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if jrnl == nil {
		return nil
	}
	j := jrnl
	jrnl = nil
	rebuild()
	return j.close()
}

// rebuild recomputes logger from the current sinks. mu must be held.
func rebuild() {
	var sinks []io.Writer
	if console != nil {
		sinks = append(sinks, console)
	}
	if jrnl != nil {
		sinks = append(sinks, jrnl)
	}
	switch len(sinks) {
	case 0:
		logger = zerolog.Nop()
		return
	case 1:
		logger = zerolog.New(sinks[0])
	default:
		logger = zerolog.New(zerolog.MultiLevelWriter(sinks...))
	}
	zerolog.TimeFieldFormat = timeFieldFormat
	logger = logger.Level(level).With().Timestamp().Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug() *zerolog.Event { return current().Debug() }
func Info() *zerolog.Event  { return current().Info() }
func Warn() *zerolog.Event  { return current().Warn() }
func Error() *zerolog.Event { return current().Error() }
// Fatalf logs at fatal level and exits. With no sink configured the event
// is dropped and the process keeps running.
func Fatalf(format string, v ...any) {
	current().Fatal().Msgf(format, v...)
}
