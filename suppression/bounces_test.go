package suppression_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/paging"
	"github.com/neone/sendgrid-go/request"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/neone/sendgrid-go/suppression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBouncesQuery(test *testing.T) {
	assert := assert.New(test)

	req := suppression.NewBouncesRequest(&suppression.BouncesParams{
		StartTime: sgtypes.TimePtr(time.Unix(1443651141, 0)),
		EndTime:   sgtypes.TimePtr(time.Unix(1443651154, 0)),
		Paging:    paging.Paging{Offset: 500, Limit: 500},
	})

	assert.Equal(request.GET, req.Method)
	assert.NoError(req.Validate())

	target, err := req.Target(encoding.Default())
	require.NoError(test, err)
	assert.Equal(
		"/v3/suppression/bounces?end_time=1443651154&limit=500&offset=500&start_time=1443651141",
		target,
	)
}

func TestBouncesWithoutParams(test *testing.T) {
	req := suppression.NewBouncesRequest(nil)

	assert.NoError(test, req.Validate())
	target, err := req.Target(encoding.Default())
	assert.NoError(test, err)
	assert.Equal(test, "/v3/suppression/bounces", target)
}

func TestBouncesValidate(test *testing.T) {
	assert := assert.New(test)

	params := &suppression.BouncesParams{
		StartTime: sgtypes.TimePtr(time.Unix(1443651154, 0)),
		EndTime:   sgtypes.TimePtr(time.Unix(1443651141, 0)),
	}
	assert.True(errors.Is(params.Validate(), sgerrors.InvalidParameter))

	params = &suppression.BouncesParams{Paging: paging.Paging{Limit: 501}}
	assert.True(errors.Is(
		suppression.NewBouncesRequest(params).Validate(), sgerrors.InvalidParameter,
	))
}

func TestBouncesDecode(test *testing.T) {
	assert := assert.New(test)

	body := `[{"created":1443651125,"email":"testemail1@test.com",` +
		`"reason":"550 5.1.1 The email account that you tried to reach does not exist.",` +
		`"status":"5.1.1"}]`

	req := suppression.NewBouncesRequest(nil)
	var bounces []suppression.Bounce
	err := encoding.Default().Decode(
		mimetype.JSON, &bounces, bytes.NewBufferString(body), req.DecodingStrategy,
	)
	require.NoError(test, err)
	require.Len(test, bounces, 1)

	assert.True(time.Unix(1443651125, 0).Equal(bounces[0].Created.Time()))
	assert.Equal("testemail1@test.com", bounces[0].Email)
	assert.Equal("5.1.1", bounces[0].Status)
}

func TestBouncesDecodeRejectsStrings(test *testing.T) {
	body := `[{"created":"2015-09-30T22:12:05Z","email":"testemail1@test.com"}]`

	var bounces []suppression.Bounce
	err := encoding.Default().Decode(
		mimetype.JSON,
		&bounces,
		bytes.NewBufferString(body),
		suppression.NewBouncesRequest(nil).DecodingStrategy,
	)
	assert.Error(test, err)
}

func TestDeleteBouncesBody(test *testing.T) {
	assert := assert.New(test)

	req := suppression.NewDeleteBouncesRequest("harry@hogwarts.edu", "ron@hogwarts.edu")
	assert.Equal(request.DELETE, req.Method)
	assert.NoError(req.Validate())
	assert.False(req.Supports(auth.NewCredential("harry", "hedwig")))

	payload, err := req.Encode(encoding.Default())
	require.NoError(test, err)
	assert.Equal(`{"emails":["harry@hogwarts.edu","ron@hogwarts.edu"]}`, string(payload.Body))

	payload, err = suppression.NewDeleteAllBouncesRequest().Encode(encoding.Default())
	require.NoError(test, err)
	assert.Equal(`{"delete_all":true}`, string(payload.Body))
}

func TestDeleteBouncesValidate(test *testing.T) {
	assert := assert.New(test)

	assert.True(errors.Is(
		suppression.NewDeleteBouncesRequest().Validate(), sgerrors.InvalidParameter,
	))

	params := &suppression.DeleteBouncesParams{DeleteAll: true, Emails: []string{"a@b.co"}}
	assert.True(errors.Is(params.Validate(), sgerrors.InvalidParameter))

	assert.True(errors.Is(
		suppression.NewDeleteBouncesRequest("harry@hogwarts.edu", "owl").Validate(),
		sgerrors.InvalidEmail,
	))
}
