package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	lg   *zap.Logger
	once sync.Once
)

// RequestIDKey stores the request identifier on a context.
type RequestIDKey struct{}

// New builds the process-wide logger. Later calls return the first one.
func New(env string) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if env != "production" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		lg, err = cfg.Build()
	})
	return lg, err
}

// L returns the process logger, or a no-op logger before New was called.
func L() *zap.Logger {
	if lg == nil {
		return zap.NewNop()
	}
	return lg
}

// WithContext attaches the request id carried by ctx.
func WithContext(ctx context.Context) *zap.Logger {
	base := L()
	if ctx == nil {
		return base
	}
	if id, ok := ctx.Value(RequestIDKey{}).(string); ok && id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}

// MaskEmail keeps the first two characters of the local part.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := []rune(email[:at]), email[at:]
	if len(local) <= 2 {
		return string(local) + "***" + domain
	}
	return string(local[:2]) + "***" + domain
}

// MaskPhone keeps only the last two digits.
func MaskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	masked := make([]rune, n)
	for i := range runes {
		if i >= n-2 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}
