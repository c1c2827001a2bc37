package transport

import (
	"net/http"
)

// Authenticator applies credentials to outgoing HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (NoAuth) Apply(_ *http.Request) {}

// BearerAuth sends an OAuth style bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth sets one custom header.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a HeaderAuth) Apply(req *http.Request) {
	req.Header.Set(a.Header, a.Value)
}

// Chain applies several authenticators in order.
type Chain []Authenticator

// Apply implements the Authenticator interface for Chain.
func (c Chain) Apply(req *http.Request) {
	for _, a := range c {
		if a != nil {
			a.Apply(req)
		}
	}
}
