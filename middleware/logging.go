package middleware

import (
	"log/slog"
	"time"

	"github.com/broady/enumprops"
)

// LoggingInterceptor creates an interceptor that logs resolutions using slog.
// Successful resolutions are logged at debug level and failures at info
// level, both with the duration.
func LoggingInterceptor(logger *slog.Logger) enumprops.ResolveInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(e *enumprops.Enum, value any, next enumprops.ResolveFunc) (*enumprops.Member, error) {
		start := time.Now()

		m, err := next(value)
		duration := time.Since(start)

		if err != nil {
			logger.Info("resolve failed",
				slog.String("enum", e.Name()),
				slog.Any("value", value),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.Debug("resolve completed",
				slog.String("enum", e.Name()),
				slog.Any("value", value),
				slog.String("member", m.String()),
				slog.Duration("duration", duration),
			)
		}

		return m, err
	}
}
