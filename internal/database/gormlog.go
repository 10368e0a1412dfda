package database

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// zapWriter feeds gorm's query log into zap.
type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

// newGormLogger reports slow queries and errors only. Record-not-found is an
// expected miss (unknown token, unset setting) and stays quiet.
func newGormLogger(log *zap.Logger) gormlogger.Interface {
	return gormlogger.New(zapWriter{log: log.Named("gorm").Sugar()}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
