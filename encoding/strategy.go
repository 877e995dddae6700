package encoding

import (
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
)

// DateEncoding selects how sgtypes.Time values are written to, and read from, a
// payload. Query strings and form bodies apply it to time.Time values as well.
type DateEncoding int

const (
	// DateDeferred writes dates as RFC3339 with nanoseconds.
	DateDeferred DateEncoding = iota
	// DateSecondsSince1970 writes dates as integer unix seconds.
	DateSecondsSince1970
	// DateMillisecondsSince1970 writes dates as integer unix milliseconds.
	DateMillisecondsSince1970
	// DateISO8601 writes dates as RFC3339 strings in UTC, without fractions.
	DateISO8601
	// DateFormatted writes dates with the strategy's DateLayout.
	DateFormatted
)

var dateEncodingNames = map[DateEncoding]string{
	DateDeferred:              "deferred",
	DateSecondsSince1970:      "seconds",
	DateMillisecondsSince1970: "milliseconds",
	DateISO8601:               "iso8601",
	DateFormatted:             "formatted",
}

func (dates DateEncoding) String() string {
	if name, ok := dateEncodingNames[dates]; ok {
		return name
	}
	return "unknown"
}

// ParseDateEncoding reads a date policy name, as used in configuration files.
func ParseDateEncoding(name string) (DateEncoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DateDeferred, nil
	}
	for dates, known := range dateEncodingNames {
		if known == name {
			return dates, nil
		}
	}
	return DateDeferred, sgerrors.InvalidStrategy.New(
		"unknown date encoding '"+name+"'", nil, nil,
	)
}

// BinaryEncoding selects how sgtypes.BinData values are written to text payloads.
type BinaryEncoding int

const (
	BinaryBase64 BinaryEncoding = iota
	BinaryHex
)

var binaryEncodingNames = map[BinaryEncoding]string{
	BinaryBase64: "base64",
	BinaryHex:    "hex",
}

func (binary BinaryEncoding) String() string {
	if name, ok := binaryEncodingNames[binary]; ok {
		return name
	}
	return "unknown"
}

// ParseBinaryEncoding reads a binary policy name, as used in configuration files.
func ParseBinaryEncoding(name string) (BinaryEncoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BinaryBase64, nil
	}
	for binary, known := range binaryEncodingNames {
		if known == name {
			return binary, nil
		}
	}
	return BinaryBase64, sgerrors.InvalidStrategy.New(
		"unknown binary encoding '"+name+"'", nil, nil,
	)
}

// policy is the comparable part of a strategy that codecs are built from. Encoding
// and decoding strategies with the same policy share codec handles.
type policy struct {
	dates      DateEncoding
	dateLayout string
	binary     BinaryEncoding
}

func (codecPolicy policy) validate() error {
	if _, ok := dateEncodingNames[codecPolicy.dates]; !ok {
		return sgerrors.InvalidStrategy.New("unknown date encoding", nil, nil)
	}
	if _, ok := binaryEncodingNames[codecPolicy.binary]; !ok {
		return sgerrors.InvalidStrategy.New("unknown binary encoding", nil, nil)
	}
	if codecPolicy.dates == DateFormatted && codecPolicy.dateLayout == "" {
		return sgerrors.InvalidStrategy.New(
			"formatted date encoding requires a layout", nil, nil,
		)
	}
	return nil
}

// EncodingStrategy carries the date and binary policies used when parameters are
// serialized.
type EncodingStrategy struct {
	Dates DateEncoding
	// Go reference layout, used when Dates is DateFormatted.
	DateLayout string
	Binary     BinaryEncoding
}

// DecodingStrategy carries the date and binary policies used when responses are
// read.
type DecodingStrategy struct {
	Dates DateEncoding
	// Go reference layout, used when Dates is DateFormatted.
	DateLayout string
	Binary     BinaryEncoding
}

// DefaultEncodingStrategy is used by requests that do not set their own.
var DefaultEncodingStrategy = EncodingStrategy{}

// DefaultDecodingStrategy is used by requests that do not set their own.
var DefaultDecodingStrategy = DecodingStrategy{}

func (strategy EncodingStrategy) policy() policy {
	return policy{
		dates:      strategy.Dates,
		dateLayout: strategy.DateLayout,
		binary:     strategy.Binary,
	}
}

// Validate fails with sgerrors.InvalidStrategy on unknown policies or a formatted
// date policy without a layout.
func (strategy EncodingStrategy) Validate() error {
	return strategy.policy().validate()
}

// Query returns the strategy used for query strings, which only honours the date
// policy.
func (strategy EncodingStrategy) Query() EncodingStrategy {
	return EncodingStrategy{Dates: strategy.Dates, DateLayout: strategy.DateLayout}
}

func (strategy DecodingStrategy) policy() policy {
	return policy{
		dates:      strategy.Dates,
		dateLayout: strategy.DateLayout,
		binary:     strategy.Binary,
	}
}

// Validate fails with sgerrors.InvalidStrategy on unknown policies or a formatted
// date policy without a layout.
func (strategy DecodingStrategy) Validate() error {
	return strategy.policy().validate()
}
