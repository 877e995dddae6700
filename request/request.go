/*
Package request describes a single outbound API call: its method, the content it
sends and accepts, its path, and its typed parameters.

A Request is built once per call, may have its exported fields adjusted before it
is sent, and carries no state afterwards. Endpoint packages construct them with New
and tune the fields their endpoint needs.
*/
package request

import (
	"strings"

	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
)

// Empty is the model of endpoints that return no content, and the parameters of
// endpoints that take none.
type Empty struct{}

// Validate always passes.
func (empty *Empty) Validate() error {
	return nil
}

/*
Request is the descriptor of one call to the API.

Model is the type the response body decodes into. Params is the type of the
parameters, which must be able to validate themselves; a nil Params means the call
has no parameters.
*/
type Request[Model any, Params validation.Validatable] struct {
	Method Method
	// Mimetype parameters are sent as, when Method carries a body.
	ContentType mimetype.MimeType
	// Mimetype requested for the response.
	AcceptType mimetype.MimeType
	// Endpoint path relative to the API root, starting with '/'.
	Path       string
	Parameters Params

	EncodingStrategy encoding.EncodingStrategy
	DecodingStrategy encoding.DecodingStrategy

	// Whether the call may be made on behalf of a subuser.
	SupportsImpersonation bool

	// Restricts the authentication kinds the endpoint accepts. Nil accepts all.
	AuthFilter func(auth.Authentication) bool
}

// New returns a JSON request with the default strategies.
func New[Model any, Params validation.Validatable](
	method Method, path string, parameters Params,
) *Request[Model, Params] {
	return &Request[Model, Params]{
		Method:                method,
		ContentType:           mimetype.JSON,
		AcceptType:            mimetype.JSON,
		Path:                  path,
		Parameters:            parameters,
		EncodingStrategy:      encoding.DefaultEncodingStrategy,
		DecodingStrategy:      encoding.DefaultDecodingStrategy,
		SupportsImpersonation: true,
	}
}

// HasParameters reports whether Parameters is set.
func (req *Request[Model, Params]) HasParameters() bool {
	return !validation.IsNil(req.Parameters)
}

/*
Validate checks the content type, the accept type and the path, then the
parameters if there are any. The first failure is returned.
*/
func (req *Request[Model, Params]) Validate() error {
	if err := req.ContentType.Validate(); err != nil {
		return err
	}
	if err := req.AcceptType.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(req.Path, "/") {
		return sgerrors.InvalidPath.New(
			"path '"+req.Path+"' must start with '/'",
			map[string]interface{}{"path": req.Path},
			nil,
		)
	}
	if !req.HasParameters() {
		return nil
	}
	return req.Parameters.Validate()
}

// Supports reports whether the endpoint accepts authentication.
func (req *Request[Model, Params]) Supports(authentication auth.Authentication) bool {
	if req.AuthFilter == nil {
		return true
	}
	return req.AuthFilter(authentication)
}

// Encode renders the parameters as a body or a query string, depending on Method.
func (req *Request[Model, Params]) Encode(engine encoding.ContentEngine) (encoding.Payload, error) {
	var parameters interface{}
	if req.HasParameters() {
		parameters = req.Parameters
	}
	return encoding.EncodeParameters(
		engine, parameters, req.Method, req.ContentType, req.EncodingStrategy,
	)
}

// Target returns the path with its query string, if the parameters produce one.
func (req *Request[Model, Params]) Target(engine encoding.ContentEngine) (string, error) {
	payload, err := req.Encode(engine)
	if err != nil {
		return "", err
	}
	return joinQuery(req.Path, payload.Query), nil
}

func joinQuery(path string, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
