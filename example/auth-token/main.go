// A guard service that verifies a signed token carried in the request
// params before answering. The verification key lives in caller-supplied
// shared state, not in the dispatcher.
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/mnehpets/jsonrpc2"
)

type authState struct {
	Key []byte
}

type whoamiParams struct {
	Token string `json:"token"`
}

type whoamiService struct{}

func (whoamiService) Handle(req *jsonrpc2.Request, state *authState) (*jsonrpc2.Response, error) {
	if !req.Matches("whoami") {
		return nil, nil
	}
	params, err := jsonrpc2.Params[whoamiParams](req)
	if err != nil {
		return nil, err
	}

	tok, err := jwt.ParseSigned(params.Token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	var claims jwt.Claims
	if err := tok.Claims(state.Key, &claims); err != nil {
		return nil, fmt.Errorf("invalid token signature: %w", err)
	}
	if err := claims.Validate(jwt.Expected{Time: time.Now()}); err != nil {
		return nil, fmt.Errorf("token rejected: %w", err)
	}

	return jsonrpc2.NewResponse(req, claims.Subject), nil
}

func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal(err)
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	token, err := jwt.Signed(signer).Claims(jwt.Claims{
		Subject:  "user123",
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Expiry:   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).Serialize()
	if err != nil {
		log.Fatal(err)
	}

	server := jsonrpc2.NewServer([]jsonrpc2.Service[*authState]{whoamiService{}})

	req, err := jsonrpc2.NewRequest("whoami", whoamiParams{Token: token})
	if err != nil {
		log.Fatal(err)
	}
	resp := server.Serve(req, &authState{Key: key})
	if resp.Err() != nil {
		log.Fatalf("dispatch failed: %s", resp.Err().Message)
	}
	fmt.Println("authenticated as:", resp.Result())
}
