package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mnehpets/jsonrpc2"
)

// slowHello simulates a handler that blocks on I/O governed by the
// caller's context before answering.
type slowHello struct{}

func (slowHello) Handle(ctx context.Context, req *jsonrpc2.Request, _ any) (*jsonrpc2.Response, error) {
	if !req.Matches("hello") {
		return nil, nil
	}
	name, err := jsonrpc2.Params[string](req)
	if err != nil {
		return nil, err
	}
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return jsonrpc2.NewResponse(req, fmt.Sprintf("Hello, %s!", name)), nil
}

func main() {
	server := jsonrpc2.NewContextServer([]jsonrpc2.ContextService[any]{slowHello{}})

	req, err := jsonrpc2.NewRequest("hello", "world")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp := server.Serve(ctx, req, nil)
	fmt.Println(resp.Result())
}
