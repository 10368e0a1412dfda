package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	lg := newGormLogger(zap.New(core))

	query := func() (string, int64) { return "SELECT * FROM settings WHERE key = 'statuses'", 0 }

	lg.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	lg.Trace(context.Background(), time.Now(), query, errors.New("no such table: settings"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, "gorm", entry.LoggerName)
	assert.Contains(t, entry.Message, "no such table")
}
