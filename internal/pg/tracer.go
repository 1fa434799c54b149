package pg

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/remiges-tech/logharbour/logharbour"
)

// LogLevel holds the pgx trace level and can be changed while queries run.
type LogLevel struct {
	mu    sync.RWMutex
	level tracelog.LogLevel
}

// NewLogLevel returns a LogLevel set to level.
func NewLogLevel(level tracelog.LogLevel) *LogLevel {
	return &LogLevel{level: level}
}

func (l *LogLevel) Set(level tracelog.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *LogLevel) Get() tracelog.LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// TracerLogger bridges tracelog.Logger and logharbour. Entries are written
// under the module "pgx".
type TracerLogger struct {
	logger   *logharbour.Logger
	logLevel *LogLevel
}

// NewTracerLogger returns a TracerLogger writing to logger. A nil level
// logs warnings and errors only.
func NewTracerLogger(logger *logharbour.Logger, level *LogLevel) *TracerLogger {
	return &TracerLogger{logger: logger, logLevel: level}
}

// Log implements tracelog.Logger. In tracelog a higher level is more
// verbose, so entries above the current level are dropped.
func (l *TracerLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	current := tracelog.LogLevelWarn
	if l.logLevel != nil {
		current = l.logLevel.Get()
	}
	if level > current {
		return
	}

	logWithModule := l.logger.WithModule("pgx")

	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		logWithModule.Debug1().LogActivity(msg, data)
	case tracelog.LogLevelWarn:
		logWithModule.Warn().LogActivity(msg, data)
	case tracelog.LogLevelError:
		logWithModule.Error(errors.New(msg)).LogActivity(msg, data)
	default:
		logWithModule.Info().LogActivity(msg, data)
	}
}
