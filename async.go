package jsonrpc2

import (
	"context"
)

// ContextService is the suspending variant of Service: Handle receives a
// context.Context from the transport or executor driving the dispatch and
// may block on I/O governed by it. The observable contract is identical to
// Service; the dispatcher never invokes two services concurrently for one
// request, so first-match-wins stays well-defined.
//
// Cancellation and timeouts belong to the caller that owns ctx; the
// dispatcher itself blocks until the chain resolves or a service fails.
type ContextService[T any] interface {
	Handle(ctx context.Context, req *Request, data T) (*Response, error)
}

// ContextServiceFunc adapts a function to a ContextService.
type ContextServiceFunc[T any] func(ctx context.Context, req *Request, data T) (*Response, error)

func (f ContextServiceFunc[T]) Handle(ctx context.Context, req *Request, data T) (*Response, error) {
	return f(ctx, req, data)
}

// ContextServer dispatches requests across an ordered list of context-aware
// services with the same semantics as Server.
type ContextServer[T any] struct {
	services []ContextService[T]
	opts     options
}

// NewContextServer creates a server that consults services in the given
// order.
func NewContextServer[T any](services []ContextService[T], opts ...Option) *ContextServer[T] {
	srv := &ContextServer[T]{services: services}
	for _, opt := range opts {
		opt(&srv.opts)
	}
	return srv
}

// Handle calls each service in order and returns the response from the
// first one that handles the request. See Server.Handle for the full
// contract; the two variants share it exactly.
func (s *ContextServer[T]) Handle(ctx context.Context, req *Request, data T) (*Response, error) {
	for _, svc := range s.services {
		resp, err := svc.Handle(ctx, req, data)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}
	return ResponseFromError(req, methodNotFoundError(req.id, req.method)), nil
}

// Serve dispatches req and always reaches a verdict, converting failures
// into error responses. A nil return means no response is owed; see
// Server.Serve.
func (s *ContextServer[T]) Serve(ctx context.Context, req *Request, data T) *Response {
	resp, err := s.Handle(ctx, req, data)
	if err != nil {
		resp = ResponseFromError(req, err)
	}
	return s.opts.finish(req, resp)
}

// ServeBatch handles a raw payload that may be a single request or a batch
// array. See Server.ServeBatch.
func (s *ContextServer[T]) ServeBatch(ctx context.Context, payload []byte, data T) (responses []*Response, single bool) {
	elems, single, err := splitBatch(payload)
	if err != nil {
		return []*Response{ErrorResponse(err)}, single
	}
	for _, elem := range elems {
		req, err := ParseRequest(elem)
		if err != nil {
			responses = append(responses, ErrorResponse(err))
			continue
		}
		if resp := s.Serve(ctx, req, data); resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, single
}
