package jsonrpc2

import (
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 protocol error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Kind classifies a failure raised while parsing or dispatching a request.
// Every failure that crosses the dispatch boundary is exactly one of these
// kinds; anything that cannot be classified lands in KindInternal.
type Kind int

const (
	// KindInternal is the bucket for foreign failures raised inside a
	// service handler. It is the zero value so that an unclassified
	// error can never map to a more specific kind by accident.
	KindInternal Kind = iota
	// KindParse indicates a payload that is not well-formed JSON.
	KindParse
	// KindInvalidRequest indicates well-formed JSON that is not a valid
	// JSON-RPC 2.0 request (missing or mistyped required fields).
	KindInvalidRequest
	// KindMethodNotFound indicates that no service claimed the request.
	KindMethodNotFound
	// KindInvalidParams indicates request parameters that are missing or
	// cannot be converted to the shape a service expects.
	KindInvalidParams
)

// String returns the stable, human-readable message for the kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "Parsing failed, invalid JSON data"
	case KindInvalidRequest:
		return "Invalid JSON-RPC request"
	case KindMethodNotFound:
		return "Service method not found"
	case KindInvalidParams:
		return "Message parameters are invalid"
	default:
		return "Internal error"
	}
}

// Error is a classified dispatch failure. It carries exactly the state
// needed to synthesize a response for its kind: the originating request id
// where one exists, the method name for method-not-found failures, a
// diagnostic string for parse and parameter failures, and the wrapped cause
// for internal failures.
type Error struct {
	kind Kind
	id   json.RawMessage // request id, when the failure postdates a parsed request
	name string          // method name, KindMethodNotFound only
	data string          // diagnostic detail for kinds that carry one
	err  error           // wrapped cause, KindInternal only
}

func parseError(data string) *Error {
	return &Error{kind: KindParse, data: data}
}

func invalidRequestError(data string) *Error {
	return &Error{kind: KindInvalidRequest, data: data}
}

func methodNotFoundError(id json.RawMessage, name string) *Error {
	return &Error{kind: KindMethodNotFound, id: id, name: name}
}

func invalidParamsError(id json.RawMessage, data string) *Error {
	return &Error{kind: KindInvalidParams, id: id, data: data}
}

// Wrap classifies err for dispatch. An *Error passes through unchanged;
// anything else lands in the internal bucket with its message preserved
// and its structured type hidden from the dispatch boundary.
func Wrap(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{kind: KindInternal, err: err}
}

// Error implements the error interface with a stable message per kind.
func (e *Error) Error() string {
	switch e.kind {
	case KindMethodNotFound:
		return fmt.Sprintf("Service method not found: %s", e.name)
	case KindInternal:
		if e.err != nil {
			return e.err.Error()
		}
	}
	return e.kind.String()
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Data returns the diagnostic detail, if the kind carries one.
func (e *Error) Data() string {
	return e.data
}

// Unwrap exposes the wrapped cause of an internal failure.
func (e *Error) Unwrap() error {
	return e.err
}

// IsKind reports whether err classifies as the given kind. A nil error
// matches nothing; an unclassified error matches KindInternal.
func IsKind(err error, k Kind) bool {
	if err == nil {
		return false
	}
	return Wrap(err).kind == k
}

// ErrorObject is the error member of a response message as it appears on
// the wire.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Error implements the error interface so transports can propagate a
// received error object directly.
func (e *ErrorObject) Error() string {
	return e.Message
}

// errorObject maps a failure to its protocol error object. This is the
// single conversion point from the error taxonomy to the wire, so the
// code and data columns of the mapping are applied consistently wherever
// a response is synthesized.
func errorObject(err error) *ErrorObject {
	e := Wrap(err)
	obj := &ErrorObject{Message: e.Error()}
	switch e.kind {
	case KindParse:
		obj.Code = CodeParseError
		obj.Data = e.data
	case KindInvalidRequest:
		obj.Code = CodeInvalidRequest
		obj.Data = e.data
	case KindMethodNotFound:
		obj.Code = CodeMethodNotFound
	case KindInvalidParams:
		obj.Code = CodeInvalidParams
		obj.Data = e.data
	default:
		obj.Code = CodeInternalError
	}
	return obj
}
