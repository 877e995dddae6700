/*
Package suppression builds requests for the bounce list of the suppression API.
*/
package suppression

import (
	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/paging"
	"github.com/neone/sendgrid-go/request"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/neone/sendgrid-go/validation"
)

// Dates on the suppression endpoints are unix seconds, both ways.
var (
	encodingStrategy = encoding.EncodingStrategy{Dates: encoding.DateSecondsSince1970}
	decodingStrategy = encoding.DecodingStrategy{Dates: encoding.DateSecondsSince1970}
)

const bouncesPath = "/v3/suppression/bounces"

// Bounce is an address that bounced, and why.
type Bounce struct {
	Created sgtypes.Time `json:"created"`
	Email   string       `json:"email"`
	Reason  string       `json:"reason"`
	Status  string       `json:"status"`
}

// BouncesParams filters the bounce list by time and pages through it.
type BouncesParams struct {
	EndTime *sgtypes.Time `json:"end_time,omitempty"`
	paging.Paging
	StartTime *sgtypes.Time `json:"start_time,omitempty"`
}

// Validate checks the paging and that the window does not end before it starts.
func (params *BouncesParams) Validate() error {
	if err := params.Paging.Validate(); err != nil {
		return err
	}
	if params.StartTime != nil && params.EndTime != nil &&
		params.EndTime.Before(*params.StartTime) {
		return sgerrors.InvalidParameter.New(
			"end_time is before start_time",
			map[string]interface{}{
				"start_time": params.StartTime.Time().Unix(),
				"end_time":   params.EndTime.Time().Unix(),
			},
			nil,
		)
	}
	return nil
}

// BouncesRequest lists bounces.
type BouncesRequest = request.Request[[]Bounce, *BouncesParams]

// NewBouncesRequest returns a request listing bounces. params may be nil.
func NewBouncesRequest(params *BouncesParams) *BouncesRequest {
	req := request.New[[]Bounce](request.GET, bouncesPath, params)
	req.EncodingStrategy = encodingStrategy
	req.DecodingStrategy = decodingStrategy
	return req
}

// DeleteBouncesParams removes either the listed addresses or every bounce.
type DeleteBouncesParams struct {
	DeleteAll bool     `json:"delete_all,omitempty"`
	Emails    []string `json:"emails,omitempty"`
}

// Validate requires exactly one of DeleteAll and Emails, and valid addresses.
func (params *DeleteBouncesParams) Validate() error {
	if params.DeleteAll == (len(params.Emails) > 0) {
		return sgerrors.InvalidParameter.New(
			"exactly one of delete_all and emails must be set", nil, nil,
		)
	}

	checks := make([]validation.Validatable, len(params.Emails))
	for index, email := range params.Emails {
		email := email
		checks[index] = validation.Func(func() error {
			return validation.Var(email, "required,email", sgerrors.InvalidEmail)
		})
	}
	return validation.All(checks...)
}

// DeleteBouncesRequest removes bounces.
type DeleteBouncesRequest = request.Request[request.Empty, *DeleteBouncesParams]

// NewDeleteBouncesRequest returns a request removing the given addresses from the
// bounce list.
func NewDeleteBouncesRequest(emails ...string) *DeleteBouncesRequest {
	return newDeleteRequest(&DeleteBouncesParams{Emails: emails})
}

// NewDeleteAllBouncesRequest returns a request clearing the bounce list.
func NewDeleteAllBouncesRequest() *DeleteBouncesRequest {
	return newDeleteRequest(&DeleteBouncesParams{DeleteAll: true})
}

func newDeleteRequest(params *DeleteBouncesParams) *DeleteBouncesRequest {
	req := request.New[request.Empty](request.DELETE, bouncesPath, params)
	req.AuthFilter = auth.OnlyAPIKey
	return req
}
