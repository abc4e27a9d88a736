package jsonrpc2

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// helloService answers the "hello" method with a greeting built from its
// string params.
type helloService struct {
	calls int
}

func (s *helloService) Handle(req *Request, _ any) (*Response, error) {
	s.calls++
	if !req.Matches("hello") {
		return nil, nil
	}
	name, err := Params[string](req)
	if err != nil {
		return nil, err
	}
	return NewResponse(req, fmt.Sprintf("Hello, %s!", name)), nil
}

// constService claims the given method and replies with a fixed result.
type constService struct {
	method string
	reply  any
	calls  int
}

func (s *constService) Handle(req *Request, _ any) (*Response, error) {
	s.calls++
	if !req.Matches(s.method) {
		return nil, nil
	}
	return NewResponse(req, s.reply), nil
}

// failingService fails every request with a foreign error.
type failingService struct {
	calls int
}

func (s *failingService) Handle(_ *Request, _ any) (*Response, error) {
	s.calls++
	return nil, errors.New("mock error")
}

func TestServeHelloWorld(t *testing.T) {
	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":7,"method":"hello","params":"world"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server := NewServer([]Service[any]{&helloService{}})
	resp := server.Serve(req, nil)
	if resp == nil {
		t.Fatal("expected a response")
	}
	if string(resp.ID()) != "7" {
		t.Errorf("got id %s, want 7", resp.ID())
	}
	if got, _ := resp.Result().(string); got != "Hello, world!" {
		t.Errorf("got result %v, want \"Hello, world!\"", resp.Result())
	}
	if resp.Err() != nil {
		t.Errorf("unexpected error object: %+v", resp.Err())
	}
}

func TestFirstResponderWins(t *testing.T) {
	first := &constService{method: "hello", reply: "first"}
	second := &constService{method: "hello", reply: "second"}
	server := NewServer([]Service[any]{first, second})

	req, err := NewRequest("hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := server.Serve(req, nil)
	if got, _ := resp.Result().(string); got != "first" {
		t.Errorf("got result %v, want %v", resp.Result(), "first")
	}
	if first.calls != 1 {
		t.Errorf("first service called %d times, want 1", first.calls)
	}
	if second.calls != 0 {
		t.Errorf("second service called %d times, want 0", second.calls)
	}
}

func TestDispatchTriesServicesInOrder(t *testing.T) {
	decliner := &constService{method: "other"}
	responder := &constService{method: "hello", reply: "ok"}
	server := NewServer([]Service[any]{decliner, responder})

	req, err := NewRequest("hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := server.Serve(req, nil)
	if got, _ := resp.Result().(string); got != "ok" {
		t.Errorf("got result %v, want %v", resp.Result(), "ok")
	}
	if decliner.calls != 1 {
		t.Errorf("declining service called %d times, want 1", decliner.calls)
	}
}

func TestMethodNotFound(t *testing.T) {
	server := NewServer([]Service[any]{&helloService{}})
	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":9,"method":"missing"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := server.Serve(req, nil)
	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.Err() == nil {
		t.Fatal("expected an error object")
	}
	if resp.Err().Code != -32601 {
		t.Errorf("got code %d, want -32601", resp.Err().Code)
	}
	if resp.Err().Message != "Service method not found: missing" {
		t.Errorf("got message %q", resp.Err().Message)
	}
	if string(resp.ID()) != "9" {
		t.Errorf("got id %s, want 9", resp.ID())
	}
}

func TestServiceErrorShortCircuits(t *testing.T) {
	failing := &failingService{}
	after := &constService{method: "hello", reply: "ok"}
	server := NewServer([]Service[any]{failing, after})

	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":3,"method":"hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := server.Serve(req, nil)
	if resp.Err() == nil {
		t.Fatal("expected an error object")
	}
	if resp.Err().Code != CodeInternalError {
		t.Errorf("got code %d, want %d", resp.Err().Code, CodeInternalError)
	}
	if resp.Err().Message != "mock error" {
		t.Errorf("got message %q, want the foreign message", resp.Err().Message)
	}
	if string(resp.ID()) != "3" {
		t.Errorf("got id %s, want 3", resp.ID())
	}
	if after.calls != 0 {
		t.Errorf("later service called %d times after a failure, want 0", after.calls)
	}
}

func TestInvalidParamsThroughDispatch(t *testing.T) {
	server := NewServer([]Service[any]{&helloService{}})
	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":5,"method":"hello","params":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := server.Serve(req, nil)
	if resp.Err() == nil || resp.Err().Code != -32602 {
		t.Fatalf("got %+v, want code -32602", resp.Err())
	}
	if string(resp.ID()) != "5" {
		t.Errorf("got id %s, want 5", resp.ID())
	}
}

func TestNotificationSuccessYieldsNoResponse(t *testing.T) {
	svc := &constService{method: "ping", reply: "pong"}
	server := NewServer([]Service[any]{svc})

	req, err := NewNotification("ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp := server.Serve(req, nil); resp != nil {
		t.Errorf("got response %+v, want none", resp)
	}
	if svc.calls != 1 {
		t.Errorf("service called %d times, want 1", svc.calls)
	}
}

func TestNotificationErrorSurfacedWithNullID(t *testing.T) {
	server := NewServer([]Service[any]{&failingService{}})

	req, err := NewNotification("ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := server.Serve(req, nil)
	if resp == nil {
		t.Fatal("failing notifications surface an error response by default")
	}
	if resp.Err() == nil {
		t.Fatal("expected an error object")
	}
	if resp.ID() != nil {
		t.Errorf("got id %s, want none", resp.ID())
	}
}

func TestNotificationMethodNotFoundSurfaced(t *testing.T) {
	server := NewServer([]Service[any]{})
	req, err := NewNotification("missing", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := server.Serve(req, nil)
	if resp == nil || resp.Err() == nil || resp.Err().Code != CodeMethodNotFound {
		t.Fatalf("got %+v, want a method-not-found response", resp)
	}
}

func TestSuppressNotificationResponsesPolicy(t *testing.T) {
	server := NewServer(
		[]Service[any]{&failingService{}},
		WithNotificationPolicy(SuppressNotificationResponses),
	)
	req, err := NewNotification("ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp := server.Serve(req, nil); resp != nil {
		t.Errorf("got response %+v, want none under the suppression policy", resp)
	}

	// The policy only affects notifications.
	call, err := NewRequest("ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp := server.Serve(call, nil); resp == nil || resp.Err() == nil {
		t.Error("requests with an id still get an error response")
	}
}

func TestServeBatchSingleRequest(t *testing.T) {
	server := NewServer([]Service[any]{&helloService{}})
	responses, single := server.ServeBatch([]byte(`{"jsonrpc":"2.0","id":7,"method":"hello","params":"world"}`), nil)
	if !single {
		t.Error("bare request payloads must report single=true")
	}
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if got, _ := responses[0].Result().(string); got != "Hello, world!" {
		t.Errorf("got result %v, want \"Hello, world!\"", responses[0].Result())
	}
}

func TestServeBatchMixed(t *testing.T) {
	server := NewServer([]Service[any]{&helloService{}, &constService{method: "ping", reply: "pong"}})
	payload := `[
		{"jsonrpc":"2.0","id":1,"method":"hello","params":"batch"},
		{"jsonrpc":"2.0","method":"ping"},
		"not a request",
		{"jsonrpc":"2.0","id":2,"method":"missing"}
	]`
	responses, single := server.ServeBatch([]byte(payload), nil)
	if single {
		t.Error("array payloads must report single=false")
	}
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3 (notification suppressed)", len(responses))
	}
	if got, _ := responses[0].Result().(string); got != "Hello, batch!" {
		t.Errorf("got result %v, want \"Hello, batch!\"", responses[0].Result())
	}
	if responses[1].Err() == nil || responses[1].Err().Code != CodeInvalidRequest {
		t.Errorf("malformed element: got %+v, want invalid request", responses[1].Err())
	}
	if responses[2].Err() == nil || responses[2].Err().Code != CodeMethodNotFound {
		t.Errorf("unknown method: got %+v, want method not found", responses[2].Err())
	}
	if string(responses[2].ID()) != "2" {
		t.Errorf("got id %s, want 2", responses[2].ID())
	}
}

func TestServeBatchAllNotifications(t *testing.T) {
	server := NewServer([]Service[any]{&constService{method: "ping", reply: "pong"}})
	payload := `[{"jsonrpc":"2.0","method":"ping"},{"jsonrpc":"2.0","method":"ping"}]`
	responses, _ := server.ServeBatch([]byte(payload), nil)
	if responses != nil {
		t.Errorf("got %d responses, want none", len(responses))
	}
}

func TestServeBatchEnvelopeErrors(t *testing.T) {
	server := NewServer([]Service[any]{})

	responses, _ := server.ServeBatch([]byte(`[]`), nil)
	if len(responses) != 1 || responses[0].Err() == nil || responses[0].Err().Code != CodeInvalidRequest {
		t.Errorf("empty batch: got %+v, want one invalid-request response", responses)
	}

	responses, _ = server.ServeBatch([]byte(`[{]`), nil)
	if len(responses) != 1 || responses[0].Err() == nil || responses[0].Err().Code != CodeParseError {
		t.Errorf("malformed batch: got %+v, want one parse-error response", responses)
	}
}

func TestServeBatchResponsesSerialize(t *testing.T) {
	server := NewServer([]Service[any]{&helloService{}})
	responses, _ := server.ServeBatch([]byte(`[{"jsonrpc":"2.0","id":1,"method":"hello","params":"a"}]`), nil)
	data, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `[{"jsonrpc":"2.0","id":1,"result":"Hello, a!"}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
