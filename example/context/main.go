package main

import (
	"fmt"
	"log"

	"github.com/mnehpets/jsonrpc2"
)

// serviceData is caller-owned state shared with every service consulted
// for a dispatch. The server threads it through without mutating it.
type serviceData struct {
	Message string
}

type greeter struct{}

func (greeter) Handle(req *jsonrpc2.Request, data *serviceData) (*jsonrpc2.Response, error) {
	if !req.Matches("hello") {
		return nil, nil
	}
	return jsonrpc2.NewResponse(req, fmt.Sprintf("Hello, %s!", data.Message)), nil
}

func main() {
	server := jsonrpc2.NewServer([]jsonrpc2.Service[*serviceData]{greeter{}})

	req, err := jsonrpc2.NewRequest("hello", nil)
	if err != nil {
		log.Fatal(err)
	}

	resp := server.Serve(req, &serviceData{Message: "world"})
	fmt.Println(resp.Result())
}
