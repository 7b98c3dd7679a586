package t212

import (
	"encoding/base64"
	"errors"
)

// BasicAuth holds the static Authorization header for the Trading 212 API,
// which uses HTTP Basic auth with the API key as username and the API secret
// as password.
type BasicAuth struct {
	header string
}

// NewBasicAuth builds the auth header from an API key/secret pair.
func NewBasicAuth(key, secret string) (*BasicAuth, error) {
	if key == "" || secret == "" {
		return nil, errors.New("both API key and secret are required")
	}
	creds := base64.StdEncoding.EncodeToString([]byte(key + ":" + secret))
	return &BasicAuth{header: "Basic " + creds}, nil
}

// Header returns the Authorization header value.
func (a *BasicAuth) Header() string {
	return a.header
}
