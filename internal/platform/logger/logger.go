package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	once sync.Once
	log  zerolog.Logger
)

func configure(out io.Writer) {
	zerolog.TimeFieldFormat = timeFormat
	log = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}).
		With().
		Timestamp().
		Logger()
}

// Get returns the process logger, configuring it on first use.
func Get() *zerolog.Logger {
	once.Do(func() { configure(os.Stdout) })
	return &log
}

// SetLevel parses a level name ("debug", "info", ...) and applies it globally.
// Unknown names fall back to info.
func SetLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}
