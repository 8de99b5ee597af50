package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Interface describes the minimal logging interface the tool relies on.
type Interface interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

var (
	globalLogger Interface
	once         sync.Once
	level        = zerolog.InfoLevel
	output       io.Writer = os.Stderr
)

// Logger returns a lazily initialized zerolog-backed logger implementing Interface.
// Logs go to stderr so that table and JSON output on stdout stays clean.
func Logger() Interface {
	once.Do(func() {
		base := zerolog.New(output).Level(level).With().Timestamp().Logger()
		globalLogger = &zerologAdapter{log: base}
	})
	return globalLogger
}

// Configure sets the level and destination of the process logger. It must be
// called before the first call to Logger to take effect.
func Configure(levelName string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	level = lvl
	if w != nil {
		output = w
	}
	return nil
}

// New builds a standalone logger writing to w, for tests and embedding.
func New(w io.Writer, levelName string) Interface {
	lvl, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return &zerologAdapter{log: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() Interface {
	return &zerologAdapter{log: zerolog.Nop()}
}

type zerologAdapter struct {
	log zerolog.Logger
}

func (l *zerologAdapter) Infof(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *zerologAdapter) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}
