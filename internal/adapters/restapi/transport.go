package restapi

import (
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// TokenProvider supplies the current bearer credential, or "" when anonymous.
type TokenProvider interface {
	Token() string
}

// UnauthorizedHandler reacts to an unauthorized response from any endpoint.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// anonymousPaths are endpoints that never carry the bearer credential.
var anonymousPaths = []string{
	"/login",
	"/register",
	"/logout",
	"/forgot-password",
	"/reset-password",
}

// BearerTransport decorates an http.RoundTripper: it attaches the bearer
// credential to every outbound request except the anonymous auth endpoints,
// and invokes the unauthorized handler whenever any response comes back 401.
type BearerTransport struct {
	// Base is the underlying transport; http.DefaultTransport when nil.
	Base http.RoundTripper
	// Tokens supplies the bearer credential.
	Tokens TokenProvider
	// OnUnauthorized is invoked after any 401 response; may be nil.
	OnUnauthorized UnauthorizedHandler
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req
	if t.Tokens != nil && !isAnonymousPath(req.URL.Path) {
		if token := t.Tokens.Token(); token != "" {
			out = req.Clone(req.Context())
			bearer := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
			bearer.SetAuthHeader(out)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(out)
	if err == nil && resp.StatusCode == http.StatusUnauthorized && t.OnUnauthorized != nil {
		t.OnUnauthorized.HandleUnauthorized()
	}
	return resp, err
}

func isAnonymousPath(path string) bool {
	for _, p := range anonymousPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
