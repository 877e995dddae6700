package session

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
)

// APIErrorDetail is one entry of the errors list the API returns on failure.
type APIErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Help    string `json:"help,omitempty"`
	Message string `json:"message"`
}

type apiErrorBody struct {
	Errors []APIErrorDetail `json:"errors"`
}

/*
ErrorFromResponse builds an sgerrors.APIResponse error from a failed response. The
error data holds the http status under "status" and the decoded error list under
"errors". A body that cannot be decoded is kept as text under "body".
*/
func ErrorFromResponse(
	statusCode int, headers http.Header, body []byte, engine encoding.ContentEngine,
) *sgerrors.Error {
	data := map[string]interface{}{"status": statusCode}
	message := strconv.Itoa(statusCode) + " " + http.StatusText(statusCode)

	decoded := apiErrorBody{}
	contentType := mimetype.FromHeader(headers)
	if contentType == mimetype.UNKNOWN {
		contentType = mimetype.JSON
	}

	err := engine.Decode(
		contentType, &decoded, bytes.NewReader(body), encoding.DefaultDecodingStrategy,
	)
	if err != nil || len(decoded.Errors) == 0 {
		if len(body) > 0 {
			data["body"] = string(body)
		}
		return sgerrors.APIResponse.New(message, data, err)
	}

	data["errors"] = decoded.Errors
	messages := make([]string, 0, len(decoded.Errors))
	for _, detail := range decoded.Errors {
		if detail.Field != "" {
			messages = append(messages, detail.Field+": "+detail.Message)
			continue
		}
		messages = append(messages, detail.Message)
	}

	return sgerrors.APIResponse.New(message+": "+strings.Join(messages, "; "), data, nil)
}
