package mail

import (
	"strings"

	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
)

// Disposition of an attachment.
type Disposition string

const (
	DispositionAttachment Disposition = "attachment"
	DispositionInline     Disposition = "inline"
)

// Attachment is a file sent with an email. Content is sent base64 encoded.
type Attachment struct {
	Content     sgtypes.BinData   `json:"content"`
	ContentID   string            `json:"content_id,omitempty"`
	Disposition Disposition       `json:"disposition,omitempty"`
	Filename    string            `json:"filename"`
	Type        mimetype.MimeType `json:"type,omitempty"`
}

// Validate fails with sgerrors.InvalidAttachment when the attachment has no content
// or filename, has an unknown disposition, or is inline without a content id.
func (attachment *Attachment) Validate() error {
	data := map[string]interface{}{"filename": attachment.Filename}

	if len(attachment.Content) == 0 {
		return sgerrors.InvalidAttachment.New("attachment has no content", data, nil)
	}
	if attachment.Filename == "" {
		return sgerrors.InvalidAttachment.New("attachment has no filename", data, nil)
	}
	if attachment.Type != mimetype.UNKNOWN && !strings.Contains(attachment.Type.String(), "/") {
		return sgerrors.InvalidAttachment.New(
			"attachment type '"+attachment.Type.String()+"' is not a mimetype", data, nil,
		)
	}

	switch attachment.Disposition {
	case "", DispositionAttachment:
	case DispositionInline:
		if attachment.ContentID == "" {
			return sgerrors.InvalidAttachment.New(
				"inline attachment requires a content id", data, nil,
			)
		}
	default:
		return sgerrors.InvalidAttachment.New(
			"unknown disposition '"+string(attachment.Disposition)+"'", data, nil,
		)
	}
	return nil
}
