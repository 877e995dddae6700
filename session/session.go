/*
Package session sends requests to the API.

A Session holds the credential, the transport and the defaults shared by every call.
Send checks the credential against the request, validates and encodes it, hands it
to the transport and decodes the response. Nothing is retried.
*/
package session

import (
	"net/http"
	"strings"

	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/config"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/logger"
	"github.com/rs/zerolog"
)

// UserAgent is sent with every call.
const UserAgent = "sendgrid-go/1.0"

// Transport performs a fully built http request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the shared state of calls made with one credential.
type Session struct {
	Auth auth.Authentication
	// Subuser calls are made on behalf of. Empty for the parent account.
	OnBehalfOf string
	BaseURL    string

	Transport Transport
	Engine    encoding.ContentEngine
	Logger    *zerolog.Logger

	// Replace the package default strategies of requests that did not set their own.
	EncodingStrategy encoding.EncodingStrategy
	DecodingStrategy encoding.DecodingStrategy
}

// New returns a session calling the production API with http.DefaultClient.
func New(authentication auth.Authentication) *Session {
	return &Session{
		Auth:             authentication,
		BaseURL:          config.DefaultBaseURL,
		Transport:        http.DefaultClient,
		Engine:           encoding.Default(),
		Logger:           logger.Nop(),
		EncodingStrategy: encoding.DefaultEncodingStrategy,
		DecodingStrategy: encoding.DefaultDecodingStrategy,
	}
}

// FromConfig builds a session from cfg. If transport is nil an http.Client with the
// configured timeout is used.
func FromConfig(cfg *config.Config, transport Transport) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	authentication, err := cfg.Authentication()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	session := New(authentication)
	session.OnBehalfOf = cfg.OnBehalfOf
	session.BaseURL = cfg.BaseURL
	session.Logger = log

	if session.EncodingStrategy, err = cfg.EncodingStrategy(); err != nil {
		return nil, err
	}
	if session.DecodingStrategy, err = cfg.DecodingStrategy(); err != nil {
		return nil, err
	}

	if transport == nil {
		transport = &http.Client{Timeout: cfg.Timeout}
	}
	session.Transport = transport

	return session, nil
}

func (session *Session) engine() encoding.ContentEngine {
	if session.Engine == nil {
		return encoding.Default()
	}
	return session.Engine
}

func (session *Session) logger() *zerolog.Logger {
	if session.Logger == nil {
		return logger.Nop()
	}
	return session.Logger
}

func (session *Session) transport() Transport {
	if session.Transport == nil {
		return http.DefaultClient
	}
	return session.Transport
}

func (session *Session) url(target string) string {
	return strings.TrimRight(session.BaseURL, "/") + target
}
