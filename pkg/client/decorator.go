package client

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
)

// RequestDecorator stamps headers onto every outgoing request before it is
// sent. Decorators are composed into the client at construction time; they
// read state and never mutate it.
type RequestDecorator func(*http.Request)

// HeaderDecorator returns the standard decorator. Accept-Language carries
// the active locale on every request. Authorization is set only when the
// authorization source yields a non-empty credential; otherwise the header
// is absent entirely. X-Request-Id gets a fresh UUID for server-side
// correlation.
func HeaderDecorator(language, authorization func() string) RequestDecorator {
	return func(req *http.Request) {
		req.Header.Set("Accept-Language", language())
		if auth := authorization(); auth != "" {
			req.Header.Set("Authorization", auth)
		}
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
}

// BasicAuth builds the Authorization header value for the given
// credentials. The login endpoint returns no token, so this is the
// credential the session stores after a successful login.
func BasicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
