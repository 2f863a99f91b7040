package transport

import (
	"net/http"
)

// Authenticator applies authentication to an outgoing HTTP request.
// The GitHub client uses BearerAuth; HeaderAuth supports gateways that
// expect the token in a custom header, and NoAuth disables the scheme
// entirely.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth leaves requests untouched.
type NoAuth struct{}

func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sets a standard Authorization bearer header.
type BearerAuth struct{}

func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the token in the named header.
type HeaderAuth struct {
	Header string
}

func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}
