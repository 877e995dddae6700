package request

import (
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
)

// Method is the HTTP method of a call.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// HasBody reports whether parameters travel in the body (true) or the query string.
// Only GET sends its parameters as a query.
func (method Method) HasBody() bool {
	switch method {
	case POST, PUT, PATCH, DELETE:
		return true
	}
	return false
}

func (method Method) String() string {
	return string(method)
}

// ParseMethod reads a method name, ignoring case.
func ParseMethod(name string) (Method, error) {
	method := Method(strings.ToUpper(strings.TrimSpace(name)))
	switch method {
	case GET, POST, PUT, PATCH, DELETE:
		return method, nil
	}
	return "", sgerrors.InvalidParameter.New(
		"unknown http method '"+name+"'", map[string]interface{}{"method": name}, nil,
	)
}
