package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/rand"
	"strconv"
)

// Version is the protocol version literal carried by every message.
const Version = "2.0"

// Request is a single JSON-RPC 2.0 request message.
//
// The method name and correlation id are fixed at construction; the
// parameters are a one-shot slot consumed by Params. A request with no id
// is a notification: the sender expects no response on success.
type Request struct {
	id     json.RawMessage
	method string
	params json.RawMessage
}

// wireRequest is the request message as it appears on the wire.
type wireRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a request that expects an answer, with a uniformly
// random non-zero integer correlation id. params may be nil for methods
// that take no parameters.
func NewRequest(method string, params any) (*Request, error) {
	raw, err := marshalValue(params)
	if err != nil {
		return nil, err
	}
	id := uint32(rand.Int63n(math.MaxUint32)) + 1
	return &Request{
		id:     json.RawMessage(strconv.FormatUint(uint64(id), 10)),
		method: method,
		params: raw,
	}, nil
}

// NewNotification creates a request with no correlation id; no response is
// expected for it on success.
func NewNotification(method string, params any) (*Request, error) {
	raw, err := marshalValue(params)
	if err != nil {
		return nil, err
	}
	return &Request{method: method, params: raw}, nil
}

func marshalValue(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, Wrap(err)
	}
	return raw, nil
}

// ParseRequest parses a request from a JSON payload. Payloads that are not
// well-formed JSON yield a KindParse failure; well-formed payloads that are
// not valid JSON-RPC 2.0 requests yield KindInvalidRequest.
func ParseRequest(data []byte) (*Request, error) {
	req := new(Request)
	if err := req.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return req, nil
}

// ParseRequestString parses a request from a JSON string.
func ParseRequestString(payload string) (*Request, error) {
	return ParseRequest([]byte(payload))
}

// ReadRequest parses a single request from a stream of JSON text.
func ReadRequest(r io.Reader) (*Request, error) {
	var w wireRequest
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, classifyJSONError(err)
	}
	return requestFromWire(&w)
}

// ID returns the raw correlation id, or nil for a notification.
func (r *Request) ID() json.RawMessage {
	return r.id
}

// Method returns the name of the requested operation.
func (r *Request) Method() string {
	return r.method
}

// Matches reports whether name equals the request method.
func (r *Request) Matches(name string) bool {
	return name == r.method
}

// Notification reports whether the request carries no correlation id.
func (r *Request) Notification() bool {
	return r.id == nil
}

// Params extracts the request parameters into T, taking ownership of them.
// The parameters are removed from the request before conversion is
// attempted, so the first service to extract them is the one that commits
// to handling the request; a later call reports that no parameters were
// given. A failed conversion yields a KindInvalidParams failure carrying
// the request id and the underlying diagnostic.
//
// This is a package-level function because Go methods cannot introduce
// type parameters.
func Params[T any](req *Request) (T, error) {
	var v T
	raw := req.params
	req.params = nil
	if raw == nil {
		return v, invalidParamsError(req.id, "no parameters given")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, invalidParamsError(req.id, err.Error())
	}
	return v, nil
}

// MarshalJSON implements json.Marshaler with the wire shape of a request.
func (r *Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRequest{
		JSONRPC: Version,
		ID:      r.id,
		Method:  r.method,
		Params:  r.params,
	})
}

// UnmarshalJSON implements json.Unmarshaler with the same classification
// rules as ParseRequest.
func (r *Request) UnmarshalJSON(data []byte) error {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return classifyJSONError(err)
	}
	req, err := requestFromWire(&w)
	if err != nil {
		return err
	}
	*r = *req
	return nil
}

// requestFromWire applies the schema rules shared by every parse entry
// point: the version literal must match, the method must be a non-empty
// string, and the id must be a scalar or null.
func requestFromWire(w *wireRequest) (*Request, error) {
	if w.JSONRPC != Version {
		return nil, invalidRequestError(`jsonrpc field must be the string "2.0"`)
	}
	if w.Method == "" {
		return nil, invalidRequestError("method must be a non-empty string")
	}
	id, err := normalizeID(w.ID)
	if err != nil {
		return nil, err
	}
	return &Request{id: id, method: w.Method, params: normalizeParams(w.Params)}, nil
}

// normalizeParams collapses absent and null parameters to nil, so a wire
// "params": null reads back as no parameters given.
func normalizeParams(params json.RawMessage) json.RawMessage {
	params = bytes.TrimSpace(params)
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		return nil
	}
	return params
}

// normalizeID canonicalizes a raw id: absent and null collapse to nil
// (notification), structured values are rejected, and any other scalar is
// kept verbatim and never interpreted.
func normalizeID(id json.RawMessage) (json.RawMessage, error) {
	id = bytes.TrimSpace(id)
	if len(id) == 0 || bytes.Equal(id, []byte("null")) {
		return nil, nil
	}
	if id[0] == '[' || id[0] == '{' {
		return nil, invalidRequestError("id must be a scalar value")
	}
	return id, nil
}

// classifyJSONError splits a JSON decoding failure into the parse-time
// kinds: syntax failures (the bytes are not well-formed JSON) map to
// KindParse, while type mismatches in an otherwise well-formed payload map
// to KindInvalidRequest. Truncated input surfaces as io.ErrUnexpectedEOF
// from the decoder and counts as a syntax failure.
func classifyJSONError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalidRequestError(err.Error())
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return parseError("unexpected end of JSON input")
	}
	return parseError(err.Error())
}
