/*
Package mail builds requests for the v3 mail send endpoint and the batch endpoints
that go with it.

An Email validates its whole entity graph before it is sent. Checks run in a fixed
order and stop at the first failure, so the same email always reports the same
error.
*/
package mail

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/neone/sendgrid-go/validation"
)

// Email is the body of a mail send request.
type Email struct {
	Personalizations []*Personalization `json:"personalizations"`
	From             Address            `json:"from"`
	ReplyTo          *Address           `json:"reply_to,omitempty"`
	Subject          string             `json:"subject,omitempty"`
	Content          []Content          `json:"content,omitempty"`
	Attachments      []*Attachment      `json:"attachments,omitempty"`
	TemplateID       string             `json:"template_id,omitempty"`
	Sections         map[string]string  `json:"sections,omitempty"`
	Headers          map[string]string  `json:"headers,omitempty"`
	Categories       []string           `json:"categories,omitempty"`
	CustomArgs       map[string]string  `json:"custom_args,omitempty"`
	SendAt           *sgtypes.Time      `json:"send_at,omitempty"`
	BatchID          string             `json:"batch_id,omitempty"`
	ASM              *ASM               `json:"asm,omitempty"`
	IPPoolName       string             `json:"ip_pool_name,omitempty"`
	MailSettings     *MailSettings      `json:"mail_settings,omitempty"`
	TrackingSettings *TrackingSettings  `json:"tracking_settings,omitempty"`

	clock func() time.Time
}

// NewEmail returns an email from an address, with a subject and content, sent to
// the given personalizations.
func NewEmail(
	from Address,
	subject string,
	personalizations []*Personalization,
	content ...Content,
) *Email {
	return &Email{
		Personalizations: personalizations,
		From:             from,
		Subject:          subject,
		Content:          content,
	}
}

// WithClock sets the clock send times are checked against. Nil restores time.Now.
func (email *Email) WithClock(clock func() time.Time) *Email {
	email.clock = clock
	return email
}

func (email *Email) now() time.Time {
	if email.clock == nil {
		return time.Now()
	}
	return email.clock()
}

/*
Validate runs the send checks in order:

	 1. personalization count
	 2. content presence
	 3. content order, validating each part
	 4. recipients, validating each personalization and address, with no duplicates
	    and no more than RecipientLimit in total
	 5. subject presence
	 6. from and reply to
	 7. headers
	 8. categories
	 9. custom arguments size per personalization
	10. unsubscribe group
	11. send time
	12. mail and tracking settings
	13. attachments

Content and accept types are checked by the request before it calls Validate.
*/
func (email *Email) Validate() error {
	now := email.now()

	checks := []validation.Func{
		email.validatePersonalizationCount,
		email.validateContentPresent,
		email.validateContentOrder,
		func() error { return email.validateRecipients(now) },
		email.validateSubject,
		func() error { return validation.All(&email.From, email.ReplyTo) },
		func() error { return ValidateHeaders(email.Headers) },
		email.validateCategories,
		email.validateCustomArgs,
		func() error { return validation.All(email.ASM) },
		func() error { return ValidateSendAt(email.SendAt, now) },
		func() error { return validation.All(email.MailSettings, email.TrackingSettings) },
		func() error { return validation.Each(email.Attachments) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (email *Email) validatePersonalizationCount() error {
	count := len(email.Personalizations)
	if count < 1 || count > PersonalizationLimit {
		return sgerrors.InvalidNumberOfPersonalizations.New(
			"email has "+strconv.Itoa(count)+" personalizations, must have between 1 and "+
				strconv.Itoa(PersonalizationLimit),
			map[string]interface{}{"count": count},
			nil,
		)
	}
	return nil
}

func (email *Email) validateContentPresent() error {
	if len(email.Content) == 0 {
		return sgerrors.MissingContent.New("email has no content", nil, nil)
	}
	return nil
}

// Parts must never go back to a lower ordering index than one already seen.
func (email *Email) validateContentOrder() error {
	highest := 0
	for index := range email.Content {
		part := &email.Content[index]
		if err := part.Validate(); err != nil {
			return err
		}

		partIndex := part.Type.Index()
		if partIndex < highest {
			return sgerrors.InvalidContentOrder.New(
				"content of type '"+part.Type.String()+"' must come before "+
					"the parts preceding it",
				map[string]interface{}{"position": index, "type": part.Type.String()},
				nil,
			)
		}
		highest = partIndex
	}
	return nil
}

/*
Personalizations check themselves concurrently while addresses are counted in
order. A personalization's own checks come before its addresses, and the earliest
personalization to fail decides the error.
*/
func (email *Email) validateRecipients(now time.Time) error {
	seen := make(map[string]bool)

	checked := len(email.Personalizations)
	var addressErr error
	for index, personalization := range email.Personalizations {
		if addressErr = collectAddresses(personalization, seen); addressErr != nil {
			checked = index + 1
			break
		}
	}

	checks := make([]validation.Validatable, checked)
	for index, personalization := range email.Personalizations[:checked] {
		personalization := personalization
		checks[index] = validation.Func(func() error {
			if personalization == nil {
				return nil
			}
			return personalization.ValidateAt(now)
		})
	}
	err := validation.Parallel(context.Background(), runtime.GOMAXPROCS(0), checks...)
	if err != nil {
		return err
	}
	if addressErr != nil {
		return addressErr
	}

	if count := len(seen); count > RecipientLimit {
		return sgerrors.TooManyRecipients.New(
			"email has "+strconv.Itoa(count)+" recipients, limit is "+
				strconv.Itoa(RecipientLimit),
			map[string]interface{}{"count": count},
			nil,
		)
	}
	return nil
}

// Validates the addresses of personalization and records them in seen, failing on
// the first address already there.
func collectAddresses(personalization *Personalization, seen map[string]bool) error {
	if personalization == nil {
		return sgerrors.MissingRecipients.New("personalization is nil", nil, nil)
	}

	for _, list := range [][]Address{
		personalization.To, personalization.CC, personalization.BCC,
	} {
		for index := range list {
			address := &list[index]
			if err := address.Validate(); err != nil {
				return err
			}

			key := address.key()
			if seen[key] {
				return sgerrors.DuplicateRecipient.New(
					"'"+key+"' is a recipient more than once",
					map[string]interface{}{"address": key},
					nil,
				)
			}
			seen[key] = true
		}
	}
	return nil
}

// Only an empty string is a missing subject.
func (email *Email) validateSubject() error {
	if email.Subject != "" || email.TemplateID != "" {
		return nil
	}
	for _, personalization := range email.Personalizations {
		if personalization.Subject == "" {
			return sgerrors.MissingSubject.New(
				"email has no subject or template, and a personalization has no subject",
				nil,
				nil,
			)
		}
	}
	return nil
}

func (email *Email) validateCategories() error {
	if count := len(email.Categories); count > CategoryTotalLimit {
		return sgerrors.TooManyCategories.New(
			"email has "+strconv.Itoa(count)+" categories, limit is "+
				strconv.Itoa(CategoryTotalLimit),
			map[string]interface{}{"count": count},
			nil,
		)
	}
	for _, category := range email.Categories {
		if len(category) > CategoryCharLimit {
			return sgerrors.CategoryTooLong.New(
				"category '"+category+"' is longer than "+strconv.Itoa(CategoryCharLimit)+
					" characters",
				map[string]interface{}{"category": category},
				nil,
			)
		}
	}
	return nil
}

func (email *Email) validateCustomArgs() error {
	for _, personalization := range email.Personalizations {
		merged := personalization.mergedCustomArgs(email.CustomArgs)
		if len(merged) == 0 {
			continue
		}

		serialized, err := encoding.MarshalJSON(merged)
		if err != nil {
			return sgerrors.EncodingFailed.New(
				"error serializing custom arguments: "+err.Error(), nil, err,
			)
		}

		if size := len(serialized); size > CustomArgsMaxBytes {
			preview := previewOf(serialized)
			return sgerrors.TooManyCustomArguments.New(
				"custom arguments are "+strconv.Itoa(size)+" bytes, limit is "+
					strconv.Itoa(CustomArgsMaxBytes)+": "+preview,
				map[string]interface{}{"bytes": size, "preview": preview},
				nil,
			)
		}
	}
	return nil
}

func previewOf(serialized []byte) string {
	if len(serialized) <= previewLength {
		return string(serialized)
	}
	return strings.ToValidUTF8(string(serialized[:previewLength]), "") + "..."
}
