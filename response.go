package jsonrpc2

import (
	"encoding/json"
)

// Response is a single JSON-RPC 2.0 response message. A response carries
// exactly one of a result or an error; construction goes through
// NewResponse, ResponseFromError, or ErrorResponse so that the exclusive
// choice holds for every response that is actually emitted.
type Response struct {
	id     json.RawMessage
	result any
	err    *ErrorObject
}

// wireResponse is the response message as it appears on the wire. A null
// id is omitted entirely, matching requests that could not be parsed.
type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// NewResponse creates a successful response for req, echoing its
// correlation id. result may be nil.
func NewResponse(req *Request, result any) *Response {
	return &Response{id: req.id, result: result}
}

// ResponseFromError converts a dispatch failure into an error response
// correlated with req.
func ResponseFromError(req *Request, err error) *Response {
	return &Response{id: req.id, err: errorObject(err)}
}

// ErrorResponse converts a failure that precedes request construction into
// an error response. The id is taken from the failure when it carries one
// and is null otherwise, which is all a caller can report for payloads
// that never parsed.
func ErrorResponse(err error) *Response {
	return &Response{id: Wrap(err).id, err: errorObject(err)}
}

// ID returns the raw correlation id echoed from the originating request,
// or nil when no request could be parsed.
func (r *Response) ID() json.RawMessage {
	return r.id
}

// Result returns the result value, nil for error responses.
func (r *Response) Result() any {
	return r.result
}

// Err returns the error object, nil for successful responses.
func (r *Response) Err() *ErrorObject {
	return r.err
}

// MarshalJSON implements json.Marshaler with the wire shape of a response.
// The result member is emitted (as null if need be) whenever the response
// is not an error, so exactly one of result and error always appears.
func (r *Response) MarshalJSON() ([]byte, error) {
	w := wireResponse{JSONRPC: Version, ID: r.id}
	if r.err != nil {
		w.Error = r.err
	} else {
		raw, err := json.Marshal(r.result)
		if err != nil {
			return nil, err
		}
		w.Result = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler for transports that consume
// responses, enforcing the same exclusive result/error choice that
// construction does.
func (r *Response) UnmarshalJSON(data []byte) error {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return classifyJSONError(err)
	}
	if w.JSONRPC != Version {
		return invalidRequestError(`jsonrpc field must be the string "2.0"`)
	}
	if (w.Result == nil) == (w.Error == nil) {
		return invalidRequestError("response must carry exactly one of result or error")
	}
	id, err := normalizeID(w.ID)
	if err != nil {
		return err
	}
	resp := Response{id: id, err: w.Error}
	if w.Error == nil {
		if err := json.Unmarshal(w.Result, &resp.result); err != nil {
			return classifyJSONError(err)
		}
	}
	*r = resp
	return nil
}
