// A WebSocket transport driving the facade: the socket owns bytes in and
// serialization out, the server owns every dispatch verdict.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/mnehpets/jsonrpc2"
	"github.com/mnehpets/jsonrpc2/middleware"
)

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

type rpcHandler struct {
	server *jsonrpc2.Server[any]
	log    zerolog.Logger
}

func (h *rpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	for {
		mt, msg, err := c.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) < 0 {
				h.log.Error().Err(err).Msg("websocket read")
			}
			return
		}
		if mt != websocket.MessageText {
			continue
		}

		responses, single := h.server.ServeBatch(msg, nil)
		if responses == nil {
			continue // nothing owed, e.g. a successful notification
		}

		var out []byte
		if single {
			out, err = json.Marshal(responses[0])
		} else {
			out, err = json.Marshal(responses)
		}
		if err != nil {
			h.log.Error().Err(err).Msg("encode response")
			return
		}
		if err := c.Write(ctx, websocket.MessageText, out); err != nil {
			h.log.Error().Err(err).Msg("websocket write")
			return
		}
	}
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}
	addr := os.Getenv("RPC_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	svc := middleware.Apply(
		jsonrpc2.Service[any](helloService{}),
		middleware.Recover[any](),
		middleware.Logging[any](log),
		middleware.RateLimit[any](100, 50),
	)
	server := jsonrpc2.NewServer([]jsonrpc2.Service[any]{svc})

	http.Handle("/rpc", &rpcHandler{server: server, log: log})
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
