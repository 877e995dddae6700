package mail

import (
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
)

// Address is an email address with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// NewAddress returns an address with a display name.
func NewAddress(email string, name string) Address {
	return Address{Email: email, Name: name}
}

// Validate fails with sgerrors.InvalidEmail when the address is missing or malformed.
func (address *Address) Validate() error {
	return validation.Var(address.Email, "required,email", sgerrors.InvalidEmail)
}

// key is the address as compared for duplicates.
func (address *Address) key() string {
	return strings.ToLower(address.Email)
}
