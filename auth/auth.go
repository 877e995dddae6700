/*
Package auth holds the credentials a session presents to the API.

Requests declare which kinds they accept through request.Request.Supports; the
session checks that before anything is sent.
*/
package auth

import (
	"encoding/base64"
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
)

// Kind is the mechanism an Authentication uses.
type Kind int

const (
	// APIKey authenticates with a bearer API key.
	APIKey Kind = iota
	// Credential authenticates with a username and password over basic auth.
	Credential
)

func (kind Kind) String() string {
	switch kind {
	case APIKey:
		return "api_key"
	case Credential:
		return "credential"
	}
	return "unknown"
}

// Authentication is a single credential. The zero value is not usable; build one
// with NewAPIKey or NewCredential.
type Authentication struct {
	kind     Kind
	key      string
	username string
	password string
}

// NewAPIKey returns an API-key authentication.
func NewAPIKey(key string) Authentication {
	return Authentication{kind: APIKey, key: strings.TrimSpace(key)}
}

// NewCredential returns a username / password authentication.
func NewCredential(username string, password string) Authentication {
	return Authentication{kind: Credential, username: username, password: password}
}

// Kind returns the mechanism this authentication uses.
func (authentication Authentication) Kind() Kind {
	return authentication.kind
}

// IsZero reports whether the authentication carries no secret at all.
func (authentication Authentication) IsZero() bool {
	return authentication.key == "" &&
		authentication.username == "" &&
		authentication.password == ""
}

// Validate fails with sgerrors.AuthenticationMissing if a required secret is empty.
func (authentication Authentication) Validate() error {
	switch authentication.kind {
	case APIKey:
		if authentication.key == "" {
			return sgerrors.AuthenticationMissing.New("api key is empty", nil, nil)
		}
	case Credential:
		if authentication.username == "" || authentication.password == "" {
			return sgerrors.AuthenticationMissing.New(
				"credential requires a username and a password", nil, nil,
			)
		}
	default:
		return sgerrors.AuthenticationMissing.New("unknown authentication kind", nil, nil)
	}
	return nil
}

// AuthorizationHeader renders the value of the Authorization header.
func (authentication Authentication) AuthorizationHeader() string {
	if authentication.kind == Credential {
		raw := authentication.username + ":" + authentication.password
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	}
	return "Bearer " + authentication.key
}

// String never includes a secret, so authentications are safe to log.
func (authentication Authentication) String() string {
	switch authentication.kind {
	case Credential:
		return "credential(" + authentication.username + ")"
	case APIKey:
		return "api_key(" + redact(authentication.key) + ")"
	}
	return "unknown"
}

// Keeps the SG. prefix of a key, if any, and hides the rest.
func redact(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "SG.") {
		return "SG.***"
	}
	return "***"
}

// OnlyAPIKey is an auth filter for endpoints that reject user credentials.
func OnlyAPIKey(authentication Authentication) bool {
	return authentication.kind == APIKey
}
