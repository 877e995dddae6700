package mail

import (
	"strconv"
	"time"

	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
)

// Personalization is a group of recipients and the values that apply to them.
type Personalization struct {
	To  []Address `json:"to"`
	CC  []Address `json:"cc,omitempty"`
	BCC []Address `json:"bcc,omitempty"`

	// Overrides the subject of the email.
	Subject string `json:"subject,omitempty"`

	Headers       map[string]string `json:"headers,omitempty"`
	Substitutions map[string]string `json:"substitutions,omitempty"`
	// Merged over the custom arguments of the email.
	CustomArgs map[string]string `json:"custom_args,omitempty"`
	SendAt     *sgtypes.Time     `json:"send_at,omitempty"`
}

// NewPersonalization returns a personalization sending to the given addresses.
func NewPersonalization(to ...Address) *Personalization {
	return &Personalization{To: to}
}

// Recipients returns the to, cc and bcc addresses, in that order.
func (personalization *Personalization) Recipients() []Address {
	recipients := make(
		[]Address,
		0,
		len(personalization.To)+len(personalization.CC)+len(personalization.BCC),
	)
	recipients = append(recipients, personalization.To...)
	recipients = append(recipients, personalization.CC...)
	return append(recipients, personalization.BCC...)
}

/*
Validate checks the personalization itself: it must have a to address, at most
SubstitutionLimit substitutions, acceptable headers and a send time in the schedule
window. Addresses are checked by Email.Validate as recipients are counted.

The schedule window is measured from the wall clock. Email.Validate measures it from
the email's clock instead; use ValidateAt to check a personalization against that
same instant.
*/
func (personalization *Personalization) Validate() error {
	return personalization.ValidateAt(time.Now())
}

// ValidateAt is Validate with the schedule window measured from now.
func (personalization *Personalization) ValidateAt(now time.Time) error {
	if len(personalization.To) == 0 {
		return sgerrors.MissingRecipients.New("personalization has no to address", nil, nil)
	}

	if count := len(personalization.Substitutions); count > SubstitutionLimit {
		return sgerrors.TooManySubstitutions.New(
			"personalization has "+strconv.Itoa(count)+" substitutions, limit is "+
				strconv.Itoa(SubstitutionLimit),
			map[string]interface{}{"count": count},
			nil,
		)
	}

	if err := ValidateHeaders(personalization.Headers); err != nil {
		return err
	}

	return ValidateSendAt(personalization.SendAt, now)
}

// Merges the custom arguments of the email with those of the personalization, which
// win on collision.
func (personalization *Personalization) mergedCustomArgs(
	base map[string]string,
) map[string]string {
	merged := make(map[string]string, len(base)+len(personalization.CustomArgs))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range personalization.CustomArgs {
		merged[key] = value
	}
	return merged
}
