package logging

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct {
	sugar *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.sugar.Warnf(format, args...)
}

// GormLogger routes gorm's slow-query and error output through zap.
func (l *Logger) GormLogger() gormlogger.Interface {
	return gormlogger.New(
		gormWriter{sugar: l.Logger.Named("gorm").Sugar()},
		gormlogger.Config{SlowThreshold: time.Second, LogLevel: gormlogger.Warn, IgnoreRecordNotFoundError: true, Colorful: false},
	)
}
