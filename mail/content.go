package mail

import (
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
)

// Content is one MIME part of the body of an email.
type Content struct {
	Type  mimetype.MimeType `json:"type"`
	Value string            `json:"value"`
}

// PlainText returns a text/plain part.
func PlainText(value string) Content {
	return Content{Type: mimetype.TEXT, Value: value}
}

// HTML returns a text/html part.
func HTML(value string) Content {
	return Content{Type: mimetype.HTML, Value: value}
}

// Validate fails with sgerrors.MissingContent on an empty value and with
// sgerrors.InvalidContentType on an unrecognized type.
func (content *Content) Validate() error {
	if content.Value == "" {
		return sgerrors.MissingContent.New(
			"content of type '"+content.Type.String()+"' has no value", nil, nil,
		)
	}
	return content.Type.Validate()
}
