package jsonrpc2

// CBOR marshaling for transports that carry the request and response
// envelopes in a binary framing instead of JSON text. The field semantics
// and schema rules are identical to the JSON wire shape; values are
// converted through the generic JSON representation the rest of the
// library operates on.

import (
	"encoding/json"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// cborDec decodes CBOR maps with string keys so decoded values stay
// convertible to the JSON value representation.
var cborDec = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

type cborRequest struct {
	JSONRPC string          `cbor:"jsonrpc"`
	ID      any             `cbor:"id,omitempty"`
	Method  string          `cbor:"method"`
	Params  cbor.RawMessage `cbor:"params,omitempty"`
}

type cborResponse struct {
	JSONRPC string          `cbor:"jsonrpc"`
	ID      any             `cbor:"id,omitempty"`
	Result  cbor.RawMessage `cbor:"result,omitempty"`
	Error   *ErrorObject    `cbor:"error,omitempty"`
}

// MarshalCBOR implements cbor.Marshaler.
func (r *Request) MarshalCBOR() ([]byte, error) {
	w := cborRequest{JSONRPC: Version, Method: r.method}
	if r.id != nil {
		if err := json.Unmarshal(r.id, &w.ID); err != nil {
			return nil, err
		}
	}
	if r.params != nil {
		var v any
		if err := json.Unmarshal(r.params, &v); err != nil {
			return nil, err
		}
		raw, err := cbor.Marshal(v)
		if err != nil {
			return nil, err
		}
		w.Params = raw
	}
	return cbor.Marshal(w)
}

// UnmarshalCBOR implements cbor.Unmarshaler with the same classification
// rules as the JSON parse entry points: undecodable bytes are a KindParse
// failure and schema violations are KindInvalidRequest.
func (r *Request) UnmarshalCBOR(data []byte) error {
	var w cborRequest
	if err := cborDec.Unmarshal(data, &w); err != nil {
		return parseError(err.Error())
	}
	id, err := jsonRaw(w.ID)
	if err != nil {
		return err
	}
	params, err := jsonRaw(w.Params)
	if err != nil {
		return err
	}
	req, err := requestFromWire(&wireRequest{
		JSONRPC: w.JSONRPC,
		ID:      id,
		Method:  w.Method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	*r = *req
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (r *Response) MarshalCBOR() ([]byte, error) {
	w := cborResponse{JSONRPC: Version}
	if r.id != nil {
		if err := json.Unmarshal(r.id, &w.ID); err != nil {
			return nil, err
		}
	}
	if r.err != nil {
		w.Error = r.err
	} else {
		raw, err := cbor.Marshal(r.result)
		if err != nil {
			return nil, err
		}
		w.Result = raw
	}
	return cbor.Marshal(w)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (r *Response) UnmarshalCBOR(data []byte) error {
	var w cborResponse
	if err := cborDec.Unmarshal(data, &w); err != nil {
		return parseError(err.Error())
	}
	if w.JSONRPC != Version {
		return invalidRequestError(`jsonrpc field must be the string "2.0"`)
	}
	if (w.Result == nil) == (w.Error == nil) {
		return invalidRequestError("response must carry exactly one of result or error")
	}
	rawID, err := jsonRaw(w.ID)
	if err != nil {
		return err
	}
	id, err := normalizeID(rawID)
	if err != nil {
		return err
	}
	resp := Response{id: id, err: w.Error}
	if w.Error == nil {
		var v any
		if err := cborDec.Unmarshal(w.Result, &v); err != nil {
			return parseError(err.Error())
		}
		resp.result = v
	}
	*r = resp
	return nil
}

// jsonRaw converts a CBOR-decoded value into the JSON value representation
// used internally. CBOR raw fields are decoded first so nested maps pass
// through the string-keyed decode mode.
func jsonRaw(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(cbor.RawMessage); ok {
		if len(raw) == 0 {
			return nil, nil
		}
		var decoded any
		if err := cborDec.Unmarshal(raw, &decoded); err != nil {
			return nil, parseError(err.Error())
		}
		v = decoded
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, invalidRequestError(err.Error())
	}
	return out, nil
}
