package mail_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/mail"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(test *testing.T) {
	assert.NoError(test, newValidEmail().Validate())
}

func TestPersonalizationCount(test *testing.T) {
	email := newValidEmail()
	email.Personalizations = nil
	assertKind(test, email.Validate(), sgerrors.InvalidNumberOfPersonalizations)

	email.Personalizations = make([]*mail.Personalization, mail.PersonalizationLimit+1)
	for index := range email.Personalizations {
		email.Personalizations[index] = mail.NewPersonalization(
			mail.Address{Email: fmt.Sprintf("student%d@hogwarts.edu", index)},
		)
	}
	assertKind(test, email.Validate(), sgerrors.InvalidNumberOfPersonalizations)
}

func TestContentPresent(test *testing.T) {
	email := newValidEmail()
	email.Content = nil
	assertKind(test, email.Validate(), sgerrors.MissingContent)

	email.Content = []mail.Content{mail.PlainText("")}
	assertKind(test, email.Validate(), sgerrors.MissingContent)
}

func TestContentTypeValidated(test *testing.T) {
	email := newValidEmail()
	email.Content = []mail.Content{{Type: mimetype.MimeType("text/x-owl"), Value: "hoot"}}

	assertKind(test, email.Validate(), sgerrors.InvalidContentType)
}

func TestContentOrderScenario(test *testing.T) {
	email := newValidEmail()

	email.Content = []mail.Content{mail.HTML("<p>hi</p>"), mail.PlainText("hi")}
	assertKind(test, email.Validate(), sgerrors.InvalidContentOrder)

	email.Content = []mail.Content{mail.PlainText("hi"), mail.HTML("<p>hi</p>")}
	assert.NoError(test, email.Validate())
}

// Builds every list of up to maxLength parts drawn from types.
func contentLists(types []mimetype.MimeType, maxLength int) [][]mimetype.MimeType {
	lists := [][]mimetype.MimeType{}
	current := [][]mimetype.MimeType{{}}
	for length := 1; length <= maxLength; length++ {
		next := [][]mimetype.MimeType{}
		for _, prefix := range current {
			for _, thisType := range types {
				list := append(append([]mimetype.MimeType{}, prefix...), thisType)
				next = append(next, list)
			}
		}
		lists = append(lists, next...)
		current = next
	}
	return lists
}

func TestContentOrderAllLists(test *testing.T) {
	types := []mimetype.MimeType{mimetype.TEXT, mimetype.HTML, mimetype.CSV}

	for _, list := range contentLists(types, 4) {
		email := newValidEmail()
		email.Content = make([]mail.Content, len(list))

		ordered := true
		for index, thisType := range list {
			email.Content[index] = mail.Content{Type: thisType, Value: "part"}
			if index > 0 && thisType.Index() < list[index-1].Index() {
				ordered = false
			}
		}

		err := email.Validate()
		if ordered {
			assert.NoError(test, err, list)
		} else {
			assertKind(test, err, sgerrors.InvalidContentOrder)
		}
	}
}

func newRecipients(count int, offset int) []mail.Address {
	addresses := make([]mail.Address, count)
	for index := range addresses {
		addresses[index] = mail.Address{
			Email: fmt.Sprintf("student%d@hogwarts.edu", index+offset),
		}
	}
	return addresses
}

func TestRecipientLimit(test *testing.T) {
	email := newValidEmail()
	email.Personalizations = nil
	for group := 0; group < 10; group++ {
		email.Personalizations = append(email.Personalizations, &mail.Personalization{
			To: newRecipients(100, group*100),
		})
	}
	assert.NoError(test, email.Validate())

	email.Personalizations[3].CC = newRecipients(1, 5000)
	err := email.Validate()
	assertKind(test, err, sgerrors.TooManyRecipients)
	assert.Equal(test, mail.RecipientLimit+1, errorData(test, err, "count"))
}

func TestDuplicateRecipient(test *testing.T) {
	cases := []struct {
		name   string
		adjust func(email *mail.Email)
	}{
		{
			name: "to and cc",
			adjust: func(email *mail.Email) {
				email.Personalizations[0].CC = []mail.Address{{Email: "HARRY@hogwarts.edu"}}
			},
		},
		{
			name: "to and bcc across personalizations",
			adjust: func(email *mail.Email) {
				email.Personalizations = append(email.Personalizations, &mail.Personalization{
					To:  []mail.Address{{Email: "ron@hogwarts.edu"}},
					BCC: []mail.Address{{Email: "Harry@Hogwarts.EDU"}},
				})
			},
		},
		{
			name: "same list",
			adjust: func(email *mail.Email) {
				email.Personalizations[0].To = append(
					email.Personalizations[0].To, mail.Address{Email: "harry@HOGWARTS.edu"},
				)
			},
		},
	}

	for _, thisCase := range cases {
		thisCase := thisCase
		test.Run(thisCase.name, func(subTest *testing.T) {
			email := newValidEmail()
			thisCase.adjust(email)

			err := email.Validate()
			assertKind(subTest, err, sgerrors.DuplicateRecipient)
			assert.Equal(subTest, "harry@hogwarts.edu", errorData(subTest, err, "address"))
		})
	}
}

func TestPersonalizationRules(test *testing.T) {
	email := newValidEmail()
	email.Personalizations[0] = &mail.Personalization{
		CC: []mail.Address{{Email: "harry@hogwarts.edu"}},
	}
	assertKind(test, email.Validate(), sgerrors.MissingRecipients)

	email = newValidEmail()
	email.Personalizations[0].Substitutions = make(map[string]string)
	for index := 0; index <= mail.SubstitutionLimit; index++ {
		email.Personalizations[0].Substitutions[fmt.Sprintf("-key%d-", index)] = "value"
	}
	assertKind(test, email.Validate(), sgerrors.TooManySubstitutions)

	email = newValidEmail()
	email.Personalizations[0].Headers = map[string]string{"Subject": "Override"}
	assertKind(test, email.Validate(), sgerrors.InvalidHeader)

	email = newValidEmail()
	past := sgtypes.TimePtr(now.Add(-time.Minute))
	email.Personalizations[0].SendAt = past
	assertKind(test, email.Validate(), sgerrors.InvalidSendAt)
}

func TestInvalidRecipientAddress(test *testing.T) {
	email := newValidEmail()
	email.Personalizations[0].BCC = []mail.Address{{Email: "not an address"}}

	assertKind(test, email.Validate(), sgerrors.InvalidEmail)
}

func TestRecipientCheckPrecedence(test *testing.T) {
	harry := mail.Address{Email: "harry@hogwarts.edu"}
	ron := mail.Address{Email: "ron@hogwarts.edu"}
	hermione := mail.Address{Email: "hermione@hogwarts.edu"}

	email := newValidEmail()
	email.Personalizations = []*mail.Personalization{
		mail.NewPersonalization(harry),
		mail.NewPersonalization(ron, harry),
		{Headers: map[string]string{"Subject": "Override"}},
	}
	assertKind(test, email.Validate(), sgerrors.DuplicateRecipient)

	email.Personalizations[1].Headers = map[string]string{"From": "voldemort@dark.org"}
	assertKind(test, email.Validate(), sgerrors.InvalidHeader)

	email.Personalizations[1] = mail.NewPersonalization(ron)
	assertKind(test, email.Validate(), sgerrors.MissingRecipients)

	email.Personalizations[2].To = []mail.Address{hermione}
	assertKind(test, email.Validate(), sgerrors.InvalidHeader)

	email.Personalizations[2].Headers = nil
	assert.NoError(test, email.Validate())
}

func TestRecipientChecksManyPersonalizations(test *testing.T) {
	email := newValidEmail()
	email.Personalizations = nil
	for index := 0; index < 200; index++ {
		address := mail.Address{Email: fmt.Sprintf("student%d@hogwarts.edu", index)}
		email.Personalizations = append(
			email.Personalizations, mail.NewPersonalization(address),
		)
	}
	require.NoError(test, email.Validate())

	email.Personalizations[150].SendAt = sgtypes.TimePtr(now.Add(-time.Hour))
	email.Personalizations[180].To = nil
	assertKind(test, email.Validate(), sgerrors.InvalidSendAt)
}

func TestSubjectPresence(test *testing.T) {
	assert := assert.New(test)

	email := newValidEmail()
	email.Subject = ""
	assertKind(test, email.Validate(), sgerrors.MissingSubject)

	email.TemplateID = "d-13b8f94fbcae4ec6b75270d6cb59f932"
	assert.NoError(email.Validate())

	email.TemplateID = ""
	email.Personalizations[0].Subject = "Your letter"
	assert.NoError(email.Validate())

	email.Personalizations = append(
		email.Personalizations,
		mail.NewPersonalization(mail.Address{Email: "hermione@hogwarts.edu"}),
	)
	assertKind(test, email.Validate(), sgerrors.MissingSubject)

	email.Subject = " "
	assert.NoError(email.Validate())
}

func TestFromAndReplyTo(test *testing.T) {
	email := newValidEmail()
	email.From = mail.Address{}
	assertKind(test, email.Validate(), sgerrors.InvalidEmail)

	email = newValidEmail()
	email.ReplyTo = &mail.Address{Email: "owl post"}
	assertKind(test, email.Validate(), sgerrors.InvalidEmail)

	email.ReplyTo = &mail.Address{Email: "minerva@hogwarts.edu"}
	assert.NoError(test, email.Validate())
}

func TestEmailHeaders(test *testing.T) {
	cases := map[string]map[string]string{
		"reserved":   {"Reply-To": "someone"},
		"whitespace": {"X Custom": "1"},
		"empty":      {"": "1"},
	}

	for name, headers := range cases {
		headers := headers
		test.Run(name, func(subTest *testing.T) {
			email := newValidEmail()
			email.Headers = headers
			assertKind(subTest, email.Validate(), sgerrors.InvalidHeader)
		})
	}

	email := newValidEmail()
	email.Headers = map[string]string{"X-Custom": "1"}
	assert.NoError(test, email.Validate())
}

func TestCategories(test *testing.T) {
	email := newValidEmail()
	for index := 0; index < mail.CategoryTotalLimit; index++ {
		email.Categories = append(email.Categories, fmt.Sprintf("category%d", index))
	}
	assert.NoError(test, email.Validate())

	email.Categories = append(email.Categories, "one too many")
	assertKind(test, email.Validate(), sgerrors.TooManyCategories)

	email.Categories = []string{strings.Repeat("c", mail.CategoryCharLimit)}
	assert.NoError(test, email.Validate())

	tooLong := strings.Repeat("c", mail.CategoryCharLimit+1)
	email.Categories = []string{"fine", tooLong}
	err := email.Validate()
	assertKind(test, err, sgerrors.CategoryTooLong)
	assert.Equal(test, tooLong, errorData(test, err, "category"))
}

func TestCustomArgsSize(test *testing.T) {
	assert := assert.New(test)

	// {"a":"..."} is eight bytes plus the value.
	email := newValidEmail()
	email.CustomArgs = map[string]string{"a": strings.Repeat("x", mail.CustomArgsMaxBytes-8)}
	assert.NoError(email.Validate())

	email.CustomArgs["a"] += "x"
	err := email.Validate()
	assertKind(test, err, sgerrors.TooManyCustomArguments)
	assert.Equal(mail.CustomArgsMaxBytes+1, errorData(test, err, "bytes"))

	preview := errorData(test, err, "preview").(string)
	assert.True(strings.HasPrefix(preview, `{"a":"xxx`))
	assert.True(strings.HasSuffix(preview, "..."))
	assert.Less(len(preview), 200)
}

func TestCustomArgsMergedPerPersonalization(test *testing.T) {
	email := newValidEmail()
	email.CustomArgs = map[string]string{
		"a": strings.Repeat("x", mail.CustomArgsMaxBytes),
	}
	email.Personalizations[0].CustomArgs = map[string]string{"a": "short"}
	assert.NoError(test, email.Validate())

	email.Personalizations = append(email.Personalizations, &mail.Personalization{
		To:         []mail.Address{{Email: "ron@hogwarts.edu"}},
		CustomArgs: map[string]string{"b": "other"},
	})
	assertKind(test, email.Validate(), sgerrors.TooManyCustomArguments)
}

func TestEmailASM(test *testing.T) {
	email := newValidEmail()
	email.ASM = &mail.ASM{GroupID: 0}
	assertKind(test, email.Validate(), sgerrors.InvalidASM)

	email.ASM = &mail.ASM{GroupID: 1, GroupsToDisplay: make([]int, mail.GroupsToDisplayLimit+1)}
	for index := range email.ASM.GroupsToDisplay {
		email.ASM.GroupsToDisplay[index] = index + 1
	}
	assertKind(test, email.Validate(), sgerrors.InvalidASM)

	email.ASM = &mail.ASM{GroupID: 1, GroupsToDisplay: []int{1, 2}}
	assert.NoError(test, email.Validate())
}

func TestEmailSendAt(test *testing.T) {
	email := newValidEmail()

	past := sgtypes.TimePtr(now.Add(-time.Second))
	email.SendAt = past
	assertKind(test, email.Validate(), sgerrors.InvalidSendAt)

	tooFar := sgtypes.TimePtr(now.Add(mail.ScheduleWindow + time.Hour))
	email.SendAt = tooFar
	assertKind(test, email.Validate(), sgerrors.InvalidSendAt)

	edge := sgtypes.TimePtr(now.Add(mail.ScheduleWindow))
	email.SendAt = edge
	assert.NoError(test, email.Validate())
}

func TestEmailAttachments(test *testing.T) {
	email := newValidEmail()
	email.Attachments = []*mail.Attachment{{Content: []byte("data"), Filename: "letter.txt"}}
	assert.NoError(test, email.Validate())

	email.Attachments[0].Disposition = mail.DispositionInline
	assertKind(test, email.Validate(), sgerrors.InvalidAttachment)
}

func TestPipelineOrder(test *testing.T) {
	cases := []struct {
		name     string
		adjust   func(email *mail.Email)
		expected *sgerrors.ErrorType
	}{
		{
			name: "personalizations before content",
			adjust: func(email *mail.Email) {
				email.Personalizations = nil
				email.Content = nil
			},
			expected: sgerrors.InvalidNumberOfPersonalizations,
		},
		{
			name: "content order before recipients",
			adjust: func(email *mail.Email) {
				email.Content = []mail.Content{mail.HTML("<p>hi</p>"), mail.PlainText("hi")}
				email.Personalizations[0].CC = email.Personalizations[0].To
			},
			expected: sgerrors.InvalidContentOrder,
		},
		{
			name: "subject before categories",
			adjust: func(email *mail.Email) {
				email.Subject = ""
				email.Categories = make([]string, mail.CategoryTotalLimit+1)
			},
			expected: sgerrors.MissingSubject,
		},
		{
			name: "categories before custom args",
			adjust: func(email *mail.Email) {
				email.Categories = make([]string, mail.CategoryTotalLimit+1)
				email.CustomArgs = map[string]string{
					"a": strings.Repeat("x", mail.CustomArgsMaxBytes),
				}
			},
			expected: sgerrors.TooManyCategories,
		},
		{
			name: "send at before settings",
			adjust: func(email *mail.Email) {
				past := sgtypes.TimePtr(now.Add(-time.Hour))
				email.SendAt = past
				email.MailSettings = &mail.MailSettings{
					SpamCheck: &mail.SpamCheckSetting{Enable: true},
				}
			},
			expected: sgerrors.InvalidSendAt,
		},
	}

	for _, thisCase := range cases {
		thisCase := thisCase
		test.Run(thisCase.name, func(subTest *testing.T) {
			email := newValidEmail()
			thisCase.adjust(email)
			assertKind(subTest, email.Validate(), thisCase.expected)
		})
	}
}

func TestValidateIdempotent(test *testing.T) {
	assert := assert.New(test)

	sendAt := sgtypes.TimePtr(now.Add(time.Hour))
	email := newValidEmail()
	email.CustomArgs = map[string]string{"campaign": "welcome"}
	email.Personalizations[0].CustomArgs = map[string]string{"house": "gryffindor"}
	email.SendAt = sendAt

	encode := func() string {
		buffer := &bytes.Buffer{}
		err := encoding.Default().Encode(
			mimetype.JSON, email, buffer, encoding.DefaultEncodingStrategy,
		)
		require.NoError(test, err)
		return buffer.String()
	}

	before := encode()
	assert.NoError(email.Validate())
	assert.NoError(email.Validate())
	assert.Equal(before, encode())
	assert.Equal(map[string]string{"house": "gryffindor"}, email.Personalizations[0].CustomArgs)

	email.Categories = make([]string, mail.CategoryTotalLimit+1)
	first := email.Validate()
	second := email.Validate()
	assertKind(test, first, sgerrors.TooManyCategories)
	assert.Equal(first.Error(), second.Error())
}

func TestPersonalizationValidateAt(test *testing.T) {
	assert := assert.New(test)

	email := newValidEmail()
	personalization := email.Personalizations[0]
	personalization.SendAt = sgtypes.TimePtr(now.Add(time.Hour))

	assert.NoError(email.Validate())
	assert.NoError(personalization.ValidateAt(now))
	assertKind(test, personalization.ValidateAt(now.Add(2*time.Hour)), sgerrors.InvalidSendAt)

	personalization.SendAt = sgtypes.TimePtr(time.Now().Add(time.Hour))
	assert.NoError(personalization.Validate())
}
