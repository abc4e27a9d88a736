package jsonrpc2

import (
	"bytes"
	"encoding/json"
)

// Service is a handler component that may handle a request. Handle is
// invoked with the request and the caller-supplied context value; it
// returns a nil response and nil error when the request is not one it
// handles, so that the server tries subsequent services. A non-nil
// response commits the service to answering; a non-nil error fails the
// dispatch and is converted into an error response by Serve.
//
// The context value is shared by every service consulted for one dispatch
// and is never mutated by the server.
type Service[T any] interface {
	Handle(req *Request, ctx T) (*Response, error)
}

// ServiceFunc adapts a function to a Service.
type ServiceFunc[T any] func(req *Request, ctx T) (*Response, error)

func (f ServiceFunc[T]) Handle(req *Request, ctx T) (*Response, error) {
	return f(req, ctx)
}

// NotificationPolicy decides whether a failing notification produces a
// response. Successful notifications never do.
type NotificationPolicy int

const (
	// SurfaceNotificationErrors emits an error response with a null id
	// when a notification fails. Transports decide whether to deliver or
	// discard it.
	SurfaceNotificationErrors NotificationPolicy = iota
	// SuppressNotificationResponses never produces a response for a
	// notification, even on failure.
	SuppressNotificationResponses
)

// Option configures a server.
type Option func(*options)

type options struct {
	policy NotificationPolicy
}

// WithNotificationPolicy sets how a server responds to failing
// notifications. The default is SurfaceNotificationErrors.
func WithNotificationPolicy(p NotificationPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// Server dispatches requests across an ordered list of services.
type Server[T any] struct {
	services []Service[T]
	opts     options
}

// NewServer creates a server that consults services in the given order.
func NewServer[T any](services []Service[T], opts ...Option) *Server[T] {
	srv := &Server[T]{services: services}
	for _, opt := range opts {
		opt(&srv.opts)
	}
	return srv
}

// Handle calls each service in order and returns the response from the
// first one that handles the request; services after the first responder
// are never invoked. An error from a service short-circuits the chain. If
// every service declines, Handle synthesizes a method-not-found error
// response carrying the request id and method name, so every request gets
// a verdict.
func (s *Server[T]) Handle(req *Request, ctx T) (*Response, error) {
	for _, svc := range s.services {
		resp, err := svc.Handle(req, ctx)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}
	return ResponseFromError(req, methodNotFoundError(req.id, req.method)), nil
}

// Serve dispatches req and always reaches a verdict: failures are
// converted into error responses correlated with the request. A nil return
// means no response is owed, which happens for a notification that
// succeeded, and for a notification that failed when the server suppresses
// notification responses.
func (s *Server[T]) Serve(req *Request, ctx T) *Response {
	resp, err := s.Handle(req, ctx)
	if err != nil {
		resp = ResponseFromError(req, err)
	}
	return s.opts.finish(req, resp)
}

// ServeBatch handles a raw payload that may be a single request or a batch
// array. Elements that fail to parse produce error responses in place;
// the rest are dispatched in order. The returned slice omits suppressed
// notification responses and is nil when no response is owed at all.
// single reports whether the payload was a bare request rather than an
// array, so a transport can mirror the shape when serializing.
func (s *Server[T]) ServeBatch(data []byte, ctx T) (responses []*Response, single bool) {
	elems, single, err := splitBatch(data)
	if err != nil {
		return []*Response{ErrorResponse(err)}, single
	}
	for _, elem := range elems {
		req, err := ParseRequest(elem)
		if err != nil {
			responses = append(responses, ErrorResponse(err))
			continue
		}
		if resp := s.Serve(req, ctx); resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, single
}

// finish applies notification suppression to a dispatch verdict.
func (o options) finish(req *Request, resp *Response) *Response {
	if !req.Notification() {
		return resp
	}
	if resp.Err() == nil || o.policy == SuppressNotificationResponses {
		return nil
	}
	return resp
}

// splitBatch separates a payload into its elements. A payload that does
// not open with '[' is a single request; an empty batch is rejected before
// any element is dispatched.
func splitBatch(data []byte) (elems []json.RawMessage, single bool, err error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []json.RawMessage{data}, true, nil
	}
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, false, classifyJSONError(err)
	}
	if len(elems) == 0 {
		return nil, false, invalidRequestError("batch must not be empty")
	}
	return elems, false, nil
}
