// Package jsonrpc2 is a transport-agnostic facade for JSON-RPC 2.0
// services.
//
// This package implements the message layer of the JSON-RPC 2.0
// specification (https://www.jsonrpc.org/specification): it parses raw
// payloads into typed requests, routes each request through an ordered
// list of services, and produces a typed response, or decides that none
// is owed. It deliberately owns no transport; sockets, pipes, and HTTP
// bodies are collaborators that feed bytes in and serialize responses out.
//
// # Basic Usage
//
// Implement Service (or use ServiceFunc), build a Server, and dispatch:
//
//	hello := jsonrpc2.ServiceFunc[any](func(req *jsonrpc2.Request, _ any) (*jsonrpc2.Response, error) {
//	    if !req.Matches("hello") {
//	        return nil, nil // not ours, try the next service
//	    }
//	    name, err := jsonrpc2.Params[string](req)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return jsonrpc2.NewResponse(req, "Hello, "+name+"!"), nil
//	})
//
//	server := jsonrpc2.NewServer([]jsonrpc2.Service[any]{hello})
//	req, _ := jsonrpc2.NewRequest("hello", "world")
//	resp := server.Serve(req, nil)
//
// Services are tried strictly in list order and the first one to return a
// response wins; if none claims the request the server answers with a
// method-not-found error, so every request gets a verdict.
//
// # Shared Context
//
// The type parameter on Service and Server is a caller-supplied value
// threaded by reference through every service consulted for one dispatch.
// It can be process-wide, per-connection, or built per call:
//
//	type State struct{ Greeting string }
//
//	svc := jsonrpc2.ServiceFunc[*State](func(req *jsonrpc2.Request, state *State) (*jsonrpc2.Response, error) {
//	    ...
//	})
//	server := jsonrpc2.NewServer([]jsonrpc2.Service[*State]{svc})
//	resp := server.Serve(req, &State{Greeting: "Hello"})
//
// # Notifications
//
// A request with no id is a notification: when its dispatch succeeds,
// Serve returns nil and the caller sends nothing. When it fails, Serve
// returns an error response with a null id by default; pass
// WithNotificationPolicy(SuppressNotificationResponses) to never respond
// to notifications at all.
//
// # Parameters
//
// Params extracts a request's parameters into a Go value, taking ownership
// of them. Extraction is one-shot: the first service to extract the
// parameters commits to the request, and a second extraction fails with
// "no parameters given".
//
// # Error Handling
//
// Failures are classified into a closed set of kinds with fixed protocol
// codes:
//   - KindParse (-32700): payload is not well-formed JSON
//   - KindInvalidRequest (-32600): well-formed but not a valid request
//   - KindMethodNotFound (-32601): no service claimed the request
//   - KindInvalidParams (-32602): parameters missing or of the wrong shape
//   - KindInternal (-32603): anything else a service propagates
//
// Services may return any error; Serve wraps unclassified errors into the
// internal bucket, preserving the message but never the structured type.
//
// # Blocking and Context-Aware Variants
//
// Service/Server run each handler to completion. ContextService and
// ContextServer thread a context.Context through each invocation for
// handlers that block on I/O; the dispatch semantics are identical, and
// services are still consulted one at a time, never concurrently.
package jsonrpc2
