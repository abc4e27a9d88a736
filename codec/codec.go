// Package codec provides pluggable envelope codecs for transports that
// carry JSON-RPC messages in a framing of their choice.
//
// The facade itself always reasons about JSON values; a codec only decides
// how an envelope is encoded on the wire. JSON is the canonical encoding,
// CBOR serves binary framings.
package codec

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes and deserializes envelope values for a transport.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	// Name identifies the codec, e.g. in a transport handshake.
	Name() string
}

// JSON encodes envelopes as JSON text.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSON) Name() string { return "json" }

// CBOR encodes envelopes as CBOR for binary transports.
type CBOR struct{}

func (CBOR) Encode(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBOR) Decode(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (CBOR) Name() string { return "cbor" }

// Get returns the codec registered under name, or nil if there is none.
func Get(name string) Codec {
	switch name {
	case "json":
		return JSON{}
	case "cbor":
		return CBOR{}
	}
	return nil
}
