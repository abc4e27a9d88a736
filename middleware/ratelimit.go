package middleware

import (
	"errors"

	"golang.org/x/time/rate"

	"github.com/mnehpets/jsonrpc2"
)

// ErrRateLimited is returned when a request exceeds the configured rate.
// The dispatcher converts it into an internal error response, so the
// caller still receives a correlated verdict.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects requests beyond a token bucket of r tokens per second
// with the given burst. The limiter is shared across every handler the
// middleware wraps, and across goroutines when a transport dispatches
// concurrently.
func RateLimit[T any](r float64, burst int) Middleware[T] {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next Handler[T]) Handler[T] {
		return func(req *jsonrpc2.Request, ctx T) (*jsonrpc2.Response, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next(req, ctx)
		}
	}
}
