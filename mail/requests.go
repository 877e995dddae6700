package mail

import (
	"net/url"

	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/request"
)

// SendRequest is a call to the mail send endpoint.
type SendRequest = request.Request[request.Empty, *Email]

// NewSendRequest returns a request sending email. Send times are written as unix
// seconds. The endpoint only accepts API keys and cannot be called on behalf of a
// subuser.
func NewSendRequest(email *Email) *SendRequest {
	req := request.New[request.Empty](request.POST, "/v3/mail/send", email)
	req.EncodingStrategy = encoding.EncodingStrategy{Dates: encoding.DateSecondsSince1970}
	req.AuthFilter = auth.OnlyAPIKey
	req.SupportsImpersonation = false
	return req
}

// BatchID identifies a batch of scheduled sends, which can be cancelled or paused
// together.
type BatchID struct {
	ID string `json:"batch_id"`
}

// BatchRequest is a call to a batch endpoint.
type BatchRequest = request.Request[BatchID, *request.Empty]

// NewBatchIDRequest returns a request generating a new batch id.
func NewBatchIDRequest() *BatchRequest {
	return request.New[BatchID, *request.Empty](request.POST, "/v3/mail/batch", nil)
}

// NewBatchValidationRequest returns a request checking that id is a valid batch id.
func NewBatchValidationRequest(id string) *BatchRequest {
	return request.New[BatchID, *request.Empty](
		request.GET, "/v3/mail/batch/"+url.PathEscape(id), nil,
	)
}
