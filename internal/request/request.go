// Package request describes the HTTP request that snippets are generated for
// and prepares its headers.
package request

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

// ContentTypeJSON is the default request content type.
const ContentTypeJSON = "application/json"

// Descriptor is one HTTP request as entered by the user.
type Descriptor struct {
	Method  string  `json:"method" yaml:"method"`
	URL     string  `json:"url" yaml:"url"`
	Headers Headers `json:"headers,omitempty" yaml:"headers,omitempty"`
	// Body is sent only for mutating methods. Empty means absent.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}

// NormalizedMethod returns the upper-case method, GET when unset.
func (d Descriptor) NormalizedMethod() string {
	m := strings.ToUpper(strings.TrimSpace(d.Method))
	if m == "" {
		return "GET"
	}
	return m
}

// IsMutating reports whether method carries a request body.
func IsMutating(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// Payload is the request body as snippets see it.
type Payload struct {
	// Raw is the body text as given.
	Raw string
	// Value is the decoded body when JSON is true.
	Value any
	JSON  bool
}

// Payload returns the body when the method carries one and it is non-empty.
func (d Descriptor) Payload() (Payload, bool) {
	if !IsMutating(d.Method) || d.Body == "" {
		return Payload{}, false
	}
	v, err := jsonvalue.DecodeString(d.Body)
	if err != nil {
		return Payload{Raw: d.Body}, true
	}
	return Payload{Raw: d.Body, Value: v, JSON: true}, true
}

// AuthType selects how credentials become headers.
type AuthType string

const (
	AuthBearer AuthType = "bearer"
	AuthAPIKey AuthType = "api_key"
	AuthBasic  AuthType = "basic"
	AuthOAuth2 AuthType = "oauth2"
)

// ParseAuthType validates s. The empty string means no auth.
func ParseAuthType(s string) (AuthType, error) {
	t := AuthType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "", AuthBearer, AuthAPIKey, AuthBasic, AuthOAuth2:
		return t, nil
	}
	return "", fmt.Errorf("unknown auth type %q (expected bearer, api_key, basic or oauth2)", s)
}

// Auth is a credential to fold into the request headers.
type Auth struct {
	Type  AuthType `json:"type" yaml:"type"`
	Value string   `json:"value" yaml:"value"`
}

// Inject returns a copy of headers with the auth header applied. A nil auth,
// an empty value or an unknown type leaves the headers unchanged.
func Inject(headers Headers, auth *Auth) Headers {
	out := headers.Clone()
	if auth == nil || auth.Value == "" {
		return out
	}
	switch auth.Type {
	case AuthBearer, AuthOAuth2:
		out.Set("Authorization", "Bearer "+auth.Value)
	case AuthAPIKey:
		out.Set("X-API-Key", auth.Value)
	case AuthBasic:
		out.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth.Value)))
	}
	return out
}

// WithDefaults returns Content-Type: application/json followed by user, with
// user entries replacing a default of the same name.
func WithDefaults(user Headers) Headers {
	out := Headers{{Name: "Content-Type", Value: ContentTypeJSON}}
	for _, h := range user {
		out.Set(h.Name, h.Value)
	}
	return out
}

// Prepare applies the default headers and auth to d.
func Prepare(d Descriptor, auth *Auth) Descriptor {
	d.Headers = Inject(WithDefaults(d.Headers), auth)
	return d
}
