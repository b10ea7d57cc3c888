package logger

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Config controls logger construction
type Config struct {
	Level  string
	Output io.Writer
	JSON   bool
}

// DefaultConfig logs info and above to stderr
func DefaultConfig() Config {
	return Config{Level: "info", Output: os.Stderr}
}

// New builds a leveled key/value logger
func New(cfg Config) (*charmlog.Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	l := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		Level:  level,
		Prefix: "cardconv",
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l, nil
}

// Discard returns a logger that writes nothing
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}
