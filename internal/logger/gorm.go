package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM's query log to zap.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{
		log:           log.Named("gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		// missing rows are an expected outcome for lookups
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.log.Error("sql error", append(fields, zap.Error(err))...)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.log.Warn("slow sql", fields...)
	case l.level >= gormlogger.Info:
		l.log.Debug("sql", fields...)
	}
}
