package encoding

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Handles encoding to / decoding from application/yaml. Dates are written in yaml's
// own timestamp form.
type yamlEncoder struct{}

func (handler *yamlEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{}, strategy EncodingStrategy,
) error {
	encoded, err := yaml.Marshal(content)
	if err != nil {
		return err
	}
	_, err = writer.Write(encoded)
	return err
}

func (handler *yamlEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{}, strategy DecodingStrategy,
) error {
	return yaml.NewDecoder(reader).Decode(contentReceiver)
}
