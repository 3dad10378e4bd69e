// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a go-flags option group shared by all commands.
type Logger struct {
	file io.Closer

	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"disabled" default:"info"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log format" choice:"console" choice:"json" default:"console"`
	File   string `long:"log-file"   env:"LOG_FILE"   description:"Append logs to this file instead of stderr"`
}

// Setup applies the options to the global logger. It exits the process when
// the log file cannot be opened.
func (l *Logger) Setup() {
	if err := l.setup(os.Stderr); err != nil {
		log.Fatal().Err(err).Str("path", l.File).Msg("Failed to open log file")
	}
}

func (l *Logger) setup(stderr io.Writer) error {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := stderr
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		out = f
	}

	if l.Format == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return nil
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    l.File != "",
	}).With().Timestamp().Logger()

	return nil
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() {
	if l.file == nil {
		return
	}
	_ = l.file.Close()
	l.file = nil
}
