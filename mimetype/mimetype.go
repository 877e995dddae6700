// Enumeration-like type for negotiable content mimetypes.
package mimetype

import (
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
)

/*
MimeType is used to enumerate the representation of request content, accept types
and the parts of a multi-part message. Types outside of the recognized list can be
wrapped, but they will not pass Validate():

	MimeType("text/x-unknown")
*/
type MimeType string

const (
	JSON  = MimeType("application/json")
	BSON  = MimeType("application/bson")
	YAML  = MimeType("application/yaml")
	FORM  = MimeType("application/x-www-form-urlencoded")
	XML   = MimeType("application/xml")
	PDF   = MimeType("application/pdf")
	OCTET = MimeType("application/octet-stream")
	TEXT  = MimeType("text/plain")
	HTML  = MimeType("text/html")
	CSV   = MimeType("text/csv")
	PNG   = MimeType("image/png")
	JPEG  = MimeType("image/jpeg")
	GIF   = MimeType("image/gif")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// List of default mimeTypes that are encoded to / from objects (as opposed to raw
// text). Their short and "x-" forms are accepted by FromString.
var objectMimeTypes = []MimeType{JSON, BSON, YAML}

// recognized is the allow-list consulted by Validate. Read-only after package init.
var recognized = map[MimeType]bool{
	JSON:  true,
	BSON:  true,
	YAML:  true,
	FORM:  true,
	XML:   true,
	PDF:   true,
	OCTET: true,
	TEXT:  true,
	HTML:  true,
	CSV:   true,
	PNG:   true,
	JPEG:  true,
	GIF:   true,
}

// Ordering indexes for multi-part content.
const (
	indexPlain = 0
	indexHTML  = 1
	indexOther = 2
)

// Interface for object used to read headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// FromHeader extracts the content type from a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

/*
FromString converts a MimeType from a string. Ignores case and any parameters such as
"; charset=utf-8". If the MimeType is a default object type, multiple formats are
respected. For instance, all of the following will yield "mimetype.JSON":

• "application/json"

• "application/JSON"

• "application/x-json"

• "json"

• "x-json"
*/
func FromString(incoming string) MimeType {
	if separator := strings.Index(incoming, ";"); separator >= 0 {
		incoming = incoming[:separator]
	}
	incoming = strings.ToLower(strings.TrimSpace(incoming))

	switch incoming {
	case "":
		return UNKNOWN
	case "text/plain", "text":
		return TEXT
	case "text/html", "html":
		return HTML
	case "form", "x-www-form-urlencoded":
		return FORM
	}

	for _, mimeType := range objectMimeTypes {
		mimeTypeLower := strings.Split(string(mimeType), "/")[1]
		if strings.HasSuffix(incoming, mimeTypeLower) {
			return mimeType
		}
	}

	return MimeType(incoming)
}

// IsRecognized reports whether the type is on the allow-list.
func (mimeType MimeType) IsRecognized() bool {
	return recognized[mimeType]
}

// Validate fails with sgerrors.InvalidContentType when the type is empty, is not of
// the "type/subtype" form, or is not on the allow-list.
func (mimeType MimeType) Validate() error {
	if mimeType == UNKNOWN {
		return sgerrors.InvalidContentType.New("content type is empty", nil, nil)
	}

	parts := strings.Split(string(mimeType), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return sgerrors.InvalidContentType.New(
			"content type '"+string(mimeType)+"' is not of the form type/subtype",
			map[string]interface{}{"contentType": string(mimeType)},
			nil,
		)
	}

	if !mimeType.IsRecognized() {
		return sgerrors.InvalidContentType.New(
			"content type '"+string(mimeType)+"' is not recognized",
			map[string]interface{}{"contentType": string(mimeType)},
			nil,
		)
	}

	return nil
}

// Index is the ordering index of the type inside a multi-part message body. Plain
// text comes before html, which comes before everything else.
func (mimeType MimeType) Index() int {
	switch mimeType {
	case TEXT:
		return indexPlain
	case HTML:
		return indexHTML
	default:
		return indexOther
	}
}

// WithCharset renders the type with a charset parameter for use in a header.
func (mimeType MimeType) WithCharset(charset string) string {
	if charset == "" {
		return string(mimeType)
	}
	return string(mimeType) + "; charset=" + charset
}

func (mimeType MimeType) String() string {
	return string(mimeType)
}
