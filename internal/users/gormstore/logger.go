package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remiges-tech/logharbour/logharbour"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger writes gorm's log output to logharbour under the module "gorm".
// Every statement is logged at Debug1; slow ones and failures at Warn and
// Error. A missing record is not an error.
type Logger struct {
	logger        *logharbour.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*Logger)(nil)

func NewLogger(logger *logharbour.Logger, slowThreshold time.Duration) *Logger {
	return &Logger{
		logger:        logger.WithModule("gorm"),
		level:         gormlogger.Info,
		slowThreshold: slowThreshold,
	}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Info().LogActivity(fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn().LogActivity(fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		text := fmt.Sprintf(msg, args...)
		l.logger.Error(errors.New(text)).LogActivity(text, nil)
	}
}

func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	data := map[string]any{
		"sql":         sql,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.logger.Error(err).LogActivity("Query failed", data)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.logger.Warn().LogActivity("Slow query", data)
	case l.level >= gormlogger.Info:
		l.logger.Debug1().LogActivity("Query", data)
	}
}
