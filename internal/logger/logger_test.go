package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/product-catalog/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewLoggerWithServiceLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	cfg.Logging.Level = "bogus"
	log = NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, ls.GetApplication())
	ls.Shutdown()

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestLoggerServiceInvalidLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.NewRelic.LicenseKey = "too-short"

	ls := NewLoggerService(cfg)
	assert.Nil(t, ls.GetApplication())
	ls.Shutdown()
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 6, GetPgxTraceLogLevel(zerolog.TraceLevel))
	assert.Equal(t, 5, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 3, GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 1, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("hello")
	assert.NotContains(t, buf.String(), "trace.id")
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), 10*time.Millisecond)
	ctx := context.Background()
	fc := func() (string, int64) { return `SELECT * FROM "products"`, 3 }

	gl.Trace(ctx, time.Now(), fc, nil)
	assert.Empty(t, buf.String(), "fast queries are not logged at info level")

	gl.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "slow query")
	buf.Reset()

	gl.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is an expected lookup outcome")

	gl.Trace(ctx, time.Now(), fc, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "query failed")
	buf.Reset()

	gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), fc, errors.New("connection reset"))
	assert.Empty(t, buf.String())
}
