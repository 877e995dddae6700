package encoding

import (
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// Handles encoding to / decoding from application/bson. BSON has native date and
// binary types, so strategies do not apply. Content must be a document: a struct or
// a map.
type bsonEncoder struct{}

func (encoder *bsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{}, strategy EncodingStrategy,
) error {
	var document bson.Raw

	if raw, isRaw := content.(*bson.Raw); isRaw {
		document = *raw
	} else {
		marshalled, err := bson.MarshalWithRegistry(bson.DefaultRegistry, content)
		if err != nil {
			return err
		}
		document = marshalled
	}

	_, err := writer.Write(document)
	return err
}

func (encoder *bsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{}, strategy DecodingStrategy,
) error {
	document, err := bson.NewFromIOReader(reader)
	if err != nil {
		return err
	}

	return bson.UnmarshalWithRegistry(bson.DefaultRegistry, document, contentReceiver)
}
