package session

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/paging"
	"github.com/neone/sendgrid-go/request"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
	"golang.org/x/xerrors"
)

// Response is a successful reply to a request.
type Response[Model any] struct {
	StatusCode int
	Header     http.Header
	// Decoded body. Left at its zero value when the body is empty or Model is
	// request.Empty.
	Model Model
	// Nil when the response carries no rate limit headers.
	RateLimit *RateLimit
	// Pages named by the Link header of list endpoints.
	Links paging.Links
}

/*
Send makes the call req describes. Before anything reaches the transport it fails
with:

• sgerrors.AuthenticationMissing if the session has no usable credential.

• sgerrors.AuthenticationNotSupported if req does not accept the credential.

• sgerrors.ImpersonationNotSupported if the session acts on behalf of a subuser and
req does not allow it.

• the first validation error of req.

• sgerrors.EncodingFailed if the parameters cannot be encoded.

A response status of 400 or above is returned as an sgerrors.APIResponse error.
*/
func Send[Model any, Params validation.Validatable](
	ctx context.Context,
	session *Session,
	req *request.Request[Model, Params],
) (*Response[Model], error) {
	log := session.logger()

	if session.Auth.IsZero() {
		return nil, sgerrors.AuthenticationMissing.New("session has no authentication", nil, nil)
	}
	if err := session.Auth.Validate(); err != nil {
		return nil, err
	}
	if !req.Supports(session.Auth) {
		return nil, sgerrors.AuthenticationNotSupported.New(
			req.Path+" does not accept "+session.Auth.Kind().String()+" authentication",
			map[string]interface{}{"path": req.Path, "auth": session.Auth.Kind().String()},
			nil,
		)
	}
	if session.OnBehalfOf != "" && !req.SupportsImpersonation {
		return nil, sgerrors.ImpersonationNotSupported.New(
			req.Path+" cannot be called on behalf of a subuser",
			map[string]interface{}{"path": req.Path, "onBehalfOf": session.OnBehalfOf},
			nil,
		)
	}

	req = withStrategies(req, session)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	engine := session.engine()
	payload, err := req.Encode(engine)
	if err != nil {
		log.Warn().Err(err).Str("path", req.Path).Msg("request encoding failed")
		return nil, err
	}

	httpReq, err := newHTTPRequest(ctx, session, req, payload)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("method", req.Method.String()).
		Str("path", req.Path).
		Int("bodyBytes", len(payload.Body)).
		Msg("dispatching request")

	httpResp, err := session.transport().Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Str("path", req.Path).Msg("transport failed")
		return nil, xerrors.Errorf("error sending request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, xerrors.Errorf("error reading response: %w", err)
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		apiErr := ErrorFromResponse(httpResp.StatusCode, httpResp.Header, body, engine)
		log.Warn().
			Int("status", httpResp.StatusCode).
			Str("path", req.Path).
			Str("errorID", apiErr.ID.String()).
			Msg(apiErr.Message)
		return nil, apiErr
	}

	response := &Response[Model]{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		RateLimit:  ParseRateLimit(httpResp.Header),
	}

	if response.Links, err = paging.LinksFromHeaders(httpResp.Header); err != nil {
		log.Debug().Err(err).Str("path", req.Path).Msg("ignoring malformed link header")
	}

	if len(body) == 0 || isEmpty(response.Model) {
		return response, nil
	}

	contentType := mimetype.FromHeader(httpResp.Header)
	if contentType == mimetype.UNKNOWN {
		contentType = req.AcceptType
	}

	err = engine.Decode(contentType, &response.Model, bytes.NewReader(body), req.DecodingStrategy)
	if err != nil {
		return nil, sgerrors.DecodingFailed.New(
			"error decoding response: "+err.Error(),
			map[string]interface{}{"status": httpResp.StatusCode},
			err,
		)
	}

	return response, nil
}

// Swaps the package default strategies of req for the session's, without touching
// req itself.
func withStrategies[Model any, Params validation.Validatable](
	req *request.Request[Model, Params], session *Session,
) *request.Request[Model, Params] {
	adjusted := *req
	if adjusted.EncodingStrategy == encoding.DefaultEncodingStrategy {
		adjusted.EncodingStrategy = session.EncodingStrategy
	}
	if adjusted.DecodingStrategy == encoding.DefaultDecodingStrategy {
		adjusted.DecodingStrategy = session.DecodingStrategy
	}
	return &adjusted
}

func newHTTPRequest[Model any, Params validation.Validatable](
	ctx context.Context,
	session *Session,
	req *request.Request[Model, Params],
	payload encoding.Payload,
) (*http.Request, error) {
	target := req.Path
	if payload.Query != "" {
		target += "?" + payload.Query
	}

	var body io.Reader
	if payload.HasBody() {
		body = bytes.NewReader(payload.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), session.url(target), body)
	if err != nil {
		return nil, xerrors.Errorf("error building request: %w", err)
	}

	httpReq.Header.Set("Authorization", session.Auth.AuthorizationHeader())
	httpReq.Header.Set("Accept", req.AcceptType.String())
	httpReq.Header.Set("User-Agent", UserAgent)
	if payload.HasBody() {
		httpReq.Header.Set("Content-Type", payload.ContentType.WithCharset("utf-8"))
	}
	if session.OnBehalfOf != "" {
		httpReq.Header.Set("On-Behalf-Of", session.OnBehalfOf)
	}

	return httpReq, nil
}

func isEmpty(model interface{}) bool {
	_, empty := model.(request.Empty)
	return empty
}
