package kit

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns a Middleware that records one line per endpoint call with
// the action name, transport, duration and outcome.
func Logging(logger *slog.Logger, action string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"action", action,
				"transport", GetTransport(ctx),
				"duration", time.Since(start),
			}
			if id := GetRequestID(ctx); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
				logger.Warn("endpoint failed", attrs...)
				return resp, err
			}
			logger.Debug("endpoint ok", attrs...)
			return resp, nil
		}
	}
}
