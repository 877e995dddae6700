package mail

import (
	"time"

	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
)

// ValidateSendAt fails with sgerrors.InvalidSendAt if sendAt is before now or more
// than ScheduleWindow after it. A nil sendAt means "send immediately".
func ValidateSendAt(sendAt *sgtypes.Time, now time.Time) error {
	if sendAt == nil {
		return nil
	}
	at := sendAt.Time()

	data := map[string]interface{}{"send_at": at.Unix()}
	if at.Before(now) {
		return sgerrors.InvalidSendAt.New("send_at is in the past", data, nil)
	}
	if at.After(now.Add(ScheduleWindow)) {
		return sgerrors.InvalidSendAt.New(
			"send_at is more than "+ScheduleWindow.String()+" ahead", data, nil,
		)
	}
	return nil
}
