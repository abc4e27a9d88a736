package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mnehpets/jsonrpc2"
)

// helloService answers "hello" with a greeting built from its params.
type helloService struct{}

func (helloService) Handle(req *jsonrpc2.Request, _ any) (*jsonrpc2.Response, error) {
	if !req.Matches("hello") {
		return nil, nil
	}
	name, err := jsonrpc2.Params[string](req)
	if err != nil {
		return nil, err
	}
	return jsonrpc2.NewResponse(req, fmt.Sprintf("Hello, %s!", name)), nil
}

func main() {
	server := jsonrpc2.NewServer([]jsonrpc2.Service[any]{helloService{}})

	req, err := jsonrpc2.NewRequest("hello", "world")
	if err != nil {
		log.Fatal(err)
	}

	resp := server.Serve(req, nil)
	out, err := json.Marshal(resp)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
