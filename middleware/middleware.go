// Package middleware provides cross-cutting wrappers for jsonrpc2
// services: chain composition, structured request logging, token-bucket
// rate limiting, and panic recovery.
//
// A Middleware wraps a Handler, the call signature shared with services.
// Middlewares compose like an onion: Chain(A, B)(h) runs A's before logic,
// then B's, then h, then B's after logic, then A's.
package middleware

import (
	"github.com/mnehpets/jsonrpc2"
)

// Handler is the call signature shared by services and middleware.
type Handler[T any] func(req *jsonrpc2.Request, ctx T) (*jsonrpc2.Response, error)

// Middleware wraps a handler with cross-cutting behavior.
type Middleware[T any] func(next Handler[T]) Handler[T]

// Chain combines middlewares into one. The first middleware becomes the
// outermost layer.
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	return func(next Handler[T]) Handler[T] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Apply wraps a service with middleware, first middleware outermost. The
// result is a Service suitable for registration with a Server.
func Apply[T any](svc jsonrpc2.Service[T], middlewares ...Middleware[T]) jsonrpc2.Service[T] {
	return jsonrpc2.ServiceFunc[T](Chain(middlewares...)(svc.Handle))
}
