package mail_test

import (
	"errors"
	"testing"
	"time"

	"github.com/neone/sendgrid-go/mail"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, time.November, 14, 21, 13, 20, 0, time.UTC)

func clock() time.Time {
	return now
}

func newValidEmail() *mail.Email {
	return mail.NewEmail(
		mail.NewAddress("dumbledore@hogwarts.edu", "Albus Dumbledore"),
		"Welcome",
		[]*mail.Personalization{
			mail.NewPersonalization(mail.Address{Email: "harry@hogwarts.edu"}),
		},
		mail.PlainText("Welcome to Hogwarts."),
		mail.HTML("<p>Welcome to Hogwarts.</p>"),
	).WithClock(clock)
}

func assertKind(test *testing.T, err error, kind *sgerrors.ErrorType) {
	test.Helper()
	assert.True(test, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func errorData(test *testing.T, err error, key string) interface{} {
	test.Helper()

	var sgError *sgerrors.Error
	require.True(test, errors.As(err, &sgError), "not an sgerrors.Error: %v", err)

	value, ok := sgError.Data(key)
	require.True(test, ok, "error has no data for %v", key)
	return value
}
