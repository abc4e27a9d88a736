package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mnehpets/jsonrpc2"
)

// Logging emits one structured log line per invocation: the method name,
// whether the request is a notification, the handling duration, and the
// outcome (answered, declined, or failed). Declined requests log at debug
// level since a service early in a chain declines most traffic.
func Logging[T any](log zerolog.Logger) Middleware[T] {
	return func(next Handler[T]) Handler[T] {
		return func(req *jsonrpc2.Request, ctx T) (*jsonrpc2.Response, error) {
			start := time.Now()
			resp, err := next(req, ctx)

			var evt *zerolog.Event
			switch {
			case err != nil:
				evt = log.Error().Err(err)
			case resp == nil:
				evt = log.Debug().Str("outcome", "declined")
			case resp.Err() != nil:
				evt = log.Warn().Int("code", resp.Err().Code).Str("outcome", "error")
			default:
				evt = log.Info().Str("outcome", "ok")
			}
			evt.Str("method", req.Method()).
				Bool("notification", req.Notification()).
				Dur("duration", time.Since(start)).
				Msg("dispatch")

			return resp, err
		}
	}
}
