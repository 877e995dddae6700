package encoding

import (
	"bytes"

	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
)

// Method is the part of an HTTP method the encoder needs.
type Method interface {
	HasBody() bool
}

// Payload is the wire form of a request's parameters. At most one of Body and Query
// is set.
type Payload struct {
	// Serialized body, for methods that carry one.
	Body []byte
	// Mimetype Body was written as.
	ContentType mimetype.MimeType
	// Percent-encoded form string without the leading '?', for methods that do not
	// carry a body.
	Query string
}

// HasBody reports whether the payload carries a body.
func (payload Payload) HasBody() bool {
	return payload.Body != nil
}

/*
EncodeParameters renders parameters for a call.

If method carries a body, parameters are written as contentType (JSON for most
endpoints) under the full strategy. Otherwise they are flattened into a query string
using only the strategy's date policy.

Nil parameters produce an empty Payload. Any failure is reported as
sgerrors.EncodingFailed.
*/
func EncodeParameters(
	engine ContentEngine,
	parameters interface{},
	method Method,
	contentType mimetype.MimeType,
	strategy EncodingStrategy,
) (Payload, error) {
	if validation.IsNil(parameters) {
		return Payload{}, nil
	}

	if method.HasBody() {
		buffer := &bytes.Buffer{}
		if err := engine.Encode(contentType, parameters, buffer, strategy); err != nil {
			return Payload{}, sgerrors.EncodingFailed.New(
				"error encoding request body: "+err.Error(), nil, err,
			)
		}
		return Payload{Body: buffer.Bytes(), ContentType: contentType}, nil
	}

	buffer := &bytes.Buffer{}
	err := engine.Encode(mimetype.FORM, parameters, buffer, strategy.Query())
	if err != nil {
		return Payload{}, sgerrors.EncodingFailed.New(
			"error encoding query: "+err.Error(), nil, err,
		)
	}
	return Payload{Query: buffer.String()}, nil
}
