package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"time"

	"golang.org/x/xerrors"
)

// Renders a date under the policy. Numeric policies return int64 so JSON writes
// them as numbers.
func (codecPolicy policy) convertDate(value time.Time) interface{} {
	switch codecPolicy.dates {
	case DateSecondsSince1970:
		return value.Unix()
	case DateMillisecondsSince1970:
		return value.UnixMilli()
	case DateISO8601:
		return value.UTC().Format(time.RFC3339)
	case DateFormatted:
		return value.Format(codecPolicy.dateLayout)
	default:
		return value.Format(time.RFC3339Nano)
	}
}

// Renders a date as text for query strings and form bodies.
func (codecPolicy policy) formatDate(value time.Time) string {
	switch converted := codecPolicy.convertDate(value).(type) {
	case int64:
		return strconv.FormatInt(converted, 10)
	case string:
		return converted
	}
	return value.String()
}

// Reads a date under the policy from whatever the codec decoded: a number or a
// string.
func (codecPolicy policy) parseDate(raw interface{}) (time.Time, error) {
	switch codecPolicy.dates {
	case DateSecondsSince1970, DateMillisecondsSince1970:
		number, err := toInt64(raw)
		if err != nil {
			return time.Time{}, err
		}
		if codecPolicy.dates == DateSecondsSince1970 {
			return time.Unix(number, 0), nil
		}
		return time.UnixMilli(number), nil
	}

	text, ok := raw.(string)
	if !ok {
		return time.Time{}, xerrors.Errorf("expected date string, got %T", raw)
	}

	switch codecPolicy.dates {
	case DateISO8601:
		return time.Parse(time.RFC3339, text)
	case DateFormatted:
		return time.Parse(codecPolicy.dateLayout, text)
	default:
		return time.Parse(time.RFC3339Nano, text)
	}
}

func toInt64(raw interface{}) (int64, error) {
	switch number := raw.(type) {
	case int64:
		return number, nil
	case uint64:
		return int64(number), nil
	case float64:
		return int64(number), nil
	case int:
		return int64(number), nil
	case string:
		return strconv.ParseInt(number, 10, 64)
	}
	return 0, xerrors.Errorf("expected numeric date, got %T", raw)
}

// Renders binary data as text under the policy.
func (codecPolicy policy) formatBinary(data []byte) string {
	if codecPolicy.binary == BinaryHex {
		return hex.EncodeToString(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// Reads binary data rendered under the policy.
func (codecPolicy policy) parseBinary(text string) ([]byte, error) {
	if codecPolicy.binary == BinaryHex {
		return hex.DecodeString(text)
	}
	return base64.StdEncoding.DecodeString(text)
}
