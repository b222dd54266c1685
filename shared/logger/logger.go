package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the verbosity and format of the process logger.
type Config struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// New builds the process-wide logger. Unknown levels fall back to info.
func New(cfg Config, service string) *zerolog.Logger {
	return newWithWriter(cfg, service, os.Stdout)
}

func newWithWriter(cfg Config, service string, w io.Writer) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &logger
}
