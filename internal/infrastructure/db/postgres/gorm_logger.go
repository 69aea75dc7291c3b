package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger routes GORM's logging through zerolog.
type gormLogger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
}

func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return &gormLogger{log: log.With().Str("component", "gorm").Logger(), level: gormlogger.Warn}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// ParamsFilter keeps bound values (emails, password hashes) out of logged SQL.
func (l *gormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		query, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("query failed")
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		query, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("slow query")
	case l.level >= gormlogger.Info:
		query, rows := fc()
		l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("query")
	}
}
