package request

import (
	"strings"

	"github.com/neone/sendgrid-go/encoding"
)

const (
	sectionIndent = "    "
	headerIndent  = "            "
	bodyIndent    = "        "
)

/*
Description renders the request as an API blueprint snippet:

	# POST /v3/mail/send

	+ Request (application/json)

	    + Headers

	            Accept: application/json

	    + Body

	        {...}

It is meant for logs and documentation. It never fails: if the parameters cannot be
encoded the query and the body are left out.
*/
func (req *Request[Model, Params]) Description() string {
	return req.describe(encoding.Default())
}

// String is Description.
func (req *Request[Model, Params]) String() string {
	return req.Description()
}

func (req *Request[Model, Params]) describe(engine encoding.ContentEngine) string {
	payload, err := req.Encode(engine)
	if err != nil {
		payload = encoding.Payload{}
	}

	var builder strings.Builder
	builder.WriteString("# ")
	builder.WriteString(req.Method.String())
	builder.WriteString(" ")
	builder.WriteString(joinQuery(req.Path, payload.Query))
	builder.WriteString("\n\n+ Request (")
	builder.WriteString(req.ContentType.String())
	builder.WriteString(")\n\n")
	builder.WriteString(sectionIndent + "+ Headers\n\n")
	builder.WriteString(headerIndent + "Accept: ")
	builder.WriteString(req.AcceptType.String())
	builder.WriteString("\n")

	if req.Method.HasBody() && len(payload.Body) > 0 {
		builder.WriteString("\n" + sectionIndent + "+ Body\n\n")
		for _, line := range strings.Split(strings.TrimRight(string(payload.Body), "\n"), "\n") {
			builder.WriteString(bodyIndent)
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
