package mail

import (
	"sort"
	"strings"
	"unicode"

	"github.com/neone/sendgrid-go/sgerrors"
)

// Headers the API sets itself and refuses from callers, lower case.
var reservedHeaders = map[string]bool{
	"x-sg-id":                   true,
	"x-sg-eid":                  true,
	"received":                  true,
	"dkim-signature":            true,
	"content-type":              true,
	"content-transfer-encoding": true,
	"to":                        true,
	"from":                      true,
	"subject":                   true,
	"reply-to":                  true,
	"cc":                        true,
	"bcc":                       true,
}

// ValidateHeaders fails with sgerrors.InvalidHeader if a header name is reserved,
// empty, or contains whitespace. Names are checked in sorted order.
func ValidateHeaders(headers map[string]string) error {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data := map[string]interface{}{"header": name}
		switch {
		case name == "":
			return sgerrors.InvalidHeader.New("header name is empty", data, nil)
		case strings.IndexFunc(name, unicode.IsSpace) >= 0:
			return sgerrors.InvalidHeader.New(
				"header '"+name+"' contains whitespace", data, nil,
			)
		case reservedHeaders[strings.ToLower(name)]:
			return sgerrors.InvalidHeader.New(
				"header '"+name+"' is reserved", data, nil,
			)
		}
	}
	return nil
}
