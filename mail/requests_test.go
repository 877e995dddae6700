package mail_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mail"
	"github.com/neone/sendgrid-go/request"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(test *testing.T) {
	assert := assert.New(test)

	req := mail.NewSendRequest(newValidEmail())
	assert.Equal(request.POST, req.Method)
	assert.Equal("/v3/mail/send", req.Path)
	assert.Equal(encoding.DateSecondsSince1970, req.EncodingStrategy.Dates)
	assert.False(req.SupportsImpersonation)
	assert.True(req.Supports(auth.NewAPIKey("SG.key")))
	assert.False(req.Supports(auth.NewCredential("harry", "hedwig")))
	assert.NoError(req.Validate())
}

func TestSendRequestChecksTypesFirst(test *testing.T) {
	email := newValidEmail()
	email.Personalizations = nil

	req := mail.NewSendRequest(email)
	req.AcceptType = ""
	assertKind(test, req.Validate(), sgerrors.InvalidContentType)

	req.AcceptType = "application/json"
	assertKind(test, req.Validate(), sgerrors.InvalidNumberOfPersonalizations)
}

func TestSendRequestBody(test *testing.T) {
	assert := assert.New(test)

	sendAt := sgtypes.TimePtr(now.Add(time.Hour))
	email := newValidEmail()
	email.SendAt = sendAt
	email.Attachments = []*mail.Attachment{
		{Content: []byte("Test Data."), Filename: "letter.txt"},
	}
	email.CustomArgs = map[string]string{"campaign": "welcome"}

	payload, err := mail.NewSendRequest(email).Encode(encoding.Default())
	require.NoError(test, err)
	assert.Empty(payload.Query)

	body := make(map[string]interface{})
	require.NoError(test, json.Unmarshal(payload.Body, &body))

	assert.Equal(float64(sendAt.Time().Unix()), body["send_at"])
	assert.Equal("Welcome", body["subject"])
	assert.Equal(
		map[string]interface{}{
			"email": "dumbledore@hogwarts.edu", "name": "Albus Dumbledore",
		},
		body["from"],
	)
	assert.Equal(map[string]interface{}{"campaign": "welcome"}, body["custom_args"])
	assert.NotContains(body, "reply_to")
	assert.NotContains(body, "clock")

	attachments := body["attachments"].([]interface{})
	require.Len(test, attachments, 1)
	assert.Equal("VGVzdCBEYXRhLg==", attachments[0].(map[string]interface{})["content"])

	content := body["content"].([]interface{})
	require.Len(test, content, 2)
	assert.Equal(
		map[string]interface{}{"type": "text/plain", "value": "Welcome to Hogwarts."},
		content[0],
	)

	personalizations := body["personalizations"].([]interface{})
	require.Len(test, personalizations, 1)
	assert.Equal(
		[]interface{}{map[string]interface{}{"email": "harry@hogwarts.edu"}},
		personalizations[0].(map[string]interface{})["to"],
	)
}

func TestSendRequestDescription(test *testing.T) {
	description := mail.NewSendRequest(newValidEmail()).Description()

	assert.Contains(test, description, "# POST /v3/mail/send\n")
	assert.Contains(test, description, "    + Body\n\n        {")
}

func TestBatchRequests(test *testing.T) {
	assert := assert.New(test)

	create := mail.NewBatchIDRequest()
	assert.Equal(request.POST, create.Method)
	assert.Equal("/v3/mail/batch", create.Path)
	assert.False(create.HasParameters())
	assert.NoError(create.Validate())

	payload, err := create.Encode(encoding.Default())
	assert.NoError(err)
	assert.Equal(encoding.Payload{}, payload)

	check := mail.NewBatchValidationRequest("HkJ5yLYULb7Rj8GKSx7u025ouWVlMgAi/x")
	assert.Equal(request.GET, check.Method)
	assert.Equal("/v3/mail/batch/HkJ5yLYULb7Rj8GKSx7u025ouWVlMgAi%2Fx", check.Path)
	assert.NoError(check.Validate())
}

func TestSendRequestPersonalizationSendAt(test *testing.T) {
	sendAt := now.Add(2 * time.Hour)
	email := newValidEmail()
	email.Personalizations[0].SendAt = sgtypes.TimePtr(sendAt)
	require.NoError(test, email.Validate())

	payload, err := mail.NewSendRequest(email).Encode(encoding.Default())
	require.NoError(test, err)

	body := struct {
		Personalizations []map[string]json.RawMessage `json:"personalizations"`
	}{}
	require.NoError(test, json.Unmarshal(payload.Body, &body))
	require.Len(test, body.Personalizations, 1)

	var seconds int64
	require.NoError(test, json.Unmarshal(body.Personalizations[0]["send_at"], &seconds))
	assert.Equal(test, sendAt.Unix(), seconds)
}
