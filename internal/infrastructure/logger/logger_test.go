package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestConfigForEnvironment(t *testing.T) {
	assert.Equal(t, "json", ConfigForEnvironment("production", "info").Format)
	assert.Equal(t, "console", ConfigForEnvironment("development", "info").Format)
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	ctx := WithRequestID(context.Background(), "req-1")
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "sql error", entries[0].Message)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	}
}

func TestGormLogger_IgnoresNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)

	assert.Empty(t, logs.All())
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
}
