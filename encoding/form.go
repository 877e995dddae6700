package encoding

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/neone/sendgrid-go/sgtypes"
	"golang.org/x/xerrors"
)

// Builds a schema encoder that reads `json` tag names and writes dates and binary
// data under the policy.
func newSchemaEncoder(codecPolicy policy) *schema.Encoder {
	encoder := schema.NewEncoder()
	encoder.SetAliasTag("json")

	encoder.RegisterEncoder(time.Time{}, func(value reflect.Value) string {
		return codecPolicy.formatDate(value.Interface().(time.Time))
	})
	encoder.RegisterEncoder(&time.Time{}, func(value reflect.Value) string {
		if value.IsNil() {
			return ""
		}
		return codecPolicy.formatDate(*value.Interface().(*time.Time))
	})
	encoder.RegisterEncoder(sgtypes.Time{}, func(value reflect.Value) string {
		return codecPolicy.formatDate(value.Interface().(sgtypes.Time).Time())
	})
	encoder.RegisterEncoder(&sgtypes.Time{}, func(value reflect.Value) string {
		if value.IsNil() {
			return ""
		}
		return codecPolicy.formatDate(value.Interface().(*sgtypes.Time).Time())
	})
	encoder.RegisterEncoder(sgtypes.BinData{}, func(value reflect.Value) string {
		return codecPolicy.formatBinary(value.Bytes())
	})

	return encoder
}

// Builds a schema decoder mirroring newSchemaEncoder.
func newSchemaDecoder(codecPolicy policy) *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)

	decoder.RegisterConverter(time.Time{}, func(text string) reflect.Value {
		parsed, err := codecPolicy.parseDate(text)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(parsed)
	})
	decoder.RegisterConverter(sgtypes.Time{}, func(text string) reflect.Value {
		parsed, err := codecPolicy.parseDate(text)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(sgtypes.NewTime(parsed))
	})
	decoder.RegisterConverter(sgtypes.BinData{}, func(text string) reflect.Value {
		decoded, err := codecPolicy.parseBinary(text)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(sgtypes.BinData(decoded))
	})

	return decoder
}

// Renders a scalar map value under the policy.
func formatScalar(codecPolicy policy, value interface{}) string {
	switch typed := value.(type) {
	case time.Time:
		return codecPolicy.formatDate(typed)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return codecPolicy.formatDate(*typed)
	case sgtypes.Time:
		return codecPolicy.formatDate(typed.Time())
	case *sgtypes.Time:
		if typed == nil {
			return ""
		}
		return codecPolicy.formatDate(typed.Time())
	case sgtypes.BinData:
		return codecPolicy.formatBinary(typed)
	case fmt.Stringer:
		return typed.String()
	}
	return fmt.Sprint(value)
}

// FormValues flattens content into form values. Content may be a struct (read
// through its `json` tags), a pointer to one, url.Values, or a map of scalars.
func (engine *Engine) FormValues(
	content interface{}, strategy EncodingStrategy,
) (url.Values, error) {
	codecPolicy := strategy.policy()

	switch typed := content.(type) {
	case url.Values:
		return typed, nil
	case map[string][]string:
		return url.Values(typed), nil
	case map[string]string:
		values := make(url.Values, len(typed))
		for key, value := range typed {
			values.Set(key, value)
		}
		return values, nil
	case map[string]interface{}:
		values := make(url.Values, len(typed))
		for key, value := range typed {
			values.Set(key, formatScalar(codecPolicy, value))
		}
		return values, nil
	}

	values := make(url.Values)
	if err := engine.formEncoder(codecPolicy).Encode(content, values); err != nil {
		return nil, err
	}
	return values, nil
}

// EncodeForm renders values as a percent-encoded form string. Keys are sorted and
// spaces are written as %20.
func EncodeForm(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		escapedKey := escapeForm(key)
		for _, value := range values[key] {
			if builder.Len() > 0 {
				builder.WriteByte('&')
			}
			builder.WriteString(escapedKey)
			builder.WriteByte('=')
			builder.WriteString(escapeForm(value))
		}
	}
	return builder.String()
}

// url.QueryEscape writes spaces as '+' and a literal '+' as %2B, so every '+' left in
// its output is a space.
func escapeForm(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// Handles encoding to / decoding from application/x-www-form-urlencoded.
type formEncoder struct{}

func (handler *formEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{}, strategy EncodingStrategy,
) error {
	defaultEngine, err := asEngine(engine)
	if err != nil {
		return err
	}
	values, err := defaultEngine.FormValues(content, strategy)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, EncodeForm(values))
	return err
}

func (handler *formEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{}, strategy DecodingStrategy,
) error {
	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}

	values, err := url.ParseQuery(buffer.String())
	if err != nil {
		return xerrors.Errorf("error parsing form: %w", err)
	}

	if receiver, ok := contentReceiver.(*url.Values); ok {
		*receiver = values
		return nil
	}

	return newSchemaDecoder(strategy.policy()).Decode(contentReceiver, values)
}
