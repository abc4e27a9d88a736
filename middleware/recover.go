package middleware

import (
	"fmt"

	"github.com/mnehpets/jsonrpc2"
)

// Recover converts a panicking handler into a dispatch failure instead of
// letting the panic tear down the transport goroutine. The panic value is
// preserved in the error message; the caller sees an internal error
// response.
func Recover[T any]() Middleware[T] {
	return func(next Handler[T]) Handler[T] {
		return func(req *jsonrpc2.Request, ctx T) (resp *jsonrpc2.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = nil
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(req, ctx)
		}
	}
}
