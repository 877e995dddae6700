package encoding

import (
	"bytes"
	"io"
	"sync"

	"github.com/gorilla/schema"
	"github.com/neone/sendgrid-go/mimetype"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// Type helpers
type encoderMapping map[mimetype.MimeType]Encoder
type decoderMapping map[mimetype.MimeType]Decoder

/*
ContentEngine details the contract for a content encoding engine. The goal of the
content engine is to give every request one way of writing its parameters, and every
response one way of being read, whatever mimetype the endpoint negotiates.
*/
type ContentEngine interface {
	// Registers an encoder for a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)

	// Registers a decoder for a given mimetype.
	SetDecoder(mimeType mimetype.MimeType, decoder Decoder)

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered decoder for the mimetype.
	HandlesDecode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered encoder AND decoder for the mimetype.
	Handles(mimeType mimetype.MimeType) bool

	// Whether the engine will attempt to decode unknown mimetypes.
	SniffType() bool

	// Decode mimeType content from reader using the decoder for mimeType. Decoded
	// content is stored in contentReceiver.
	Decode(
		mimeType mimetype.MimeType,
		contentReceiver interface{},
		reader io.Reader,
		strategy DecodingStrategy,
	) error

	// Encode content as mimeType to writer.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
		strategy EncodingStrategy,
	) error
}

/*
Engine is the default implementation of the ContentEngine interface.

Instantiation

Use NewContentEngine() to create a new Engine, or Default() for the process-wide
engine shared by requests that are not handed one explicitly.

Default Mimetypes

• application/json

• application/x-www-form-urlencoded

• application/yaml

• application/bson

• text/plain

Strategies

Dates and sgtypes.BinData values are written according to the EncodingStrategy
passed to Encode, and read according to the DecodingStrategy passed to Decode. JSON
uses the codec library (https://godoc.org/github.com/ugorji/go/codec); one handle is
built per distinct policy and reused afterwards. Form content is written through
gorilla/schema using only the date policy. YAML and BSON carry dates and binary data
in their own native representations and ignore the strategy.

Additional json extensions can be registered through AddJSONExtensions() by passing
a slice of JSONExtensionOpts objects. They apply to handles built afterwards.

Type Sniffing

If created with "allowSniff" set to true, when decoding an UNKNOWN mimetype Engine
will attempt each decoder, in registration order, until one does not return an
error or panic.

Panics

If an encoder or decoder panics during execution, that panic is caught and returned
as an error.
*/
type Engine struct {
	// MimeType:Encoder mapping
	encoders encoderMapping
	// MimeType:Decoder mapping
	decoders decoderMapping
	// Registered decoder mimetypes in registration order. Used for sniffing.
	decoderOrder []mimetype.MimeType
	// Whether to attempt decoding when no explicit mimetype is known.
	sniffMimeType bool

	// Guards the handle caches and extensions below.
	lock sync.Mutex
	// JSON handles, one per policy.
	jsonHandles map[policy]*codec.JsonHandle
	// Form encoders, one per policy.
	formEncoders map[policy]*schema.Encoder
	// Extra JSON extensions
	jsonExtensions []*JSONExtensionOpts
}

// Register an encoder for a given mimeType
func (engine *Engine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.encoders[mimeType] = encoder
}

// Register a decoder for a given mimeType
func (engine *Engine) SetDecoder(mimeType mimetype.MimeType, decoder Decoder) {
	if _, exists := engine.decoders[mimeType]; !exists {
		engine.decoderOrder = append(engine.decoderOrder, mimeType)
	}
	engine.decoders[mimeType] = decoder
}

// Whether Engine will attempt to decode UNKNOWN content.
func (engine *Engine) SniffType() bool {
	return engine.sniffMimeType
}

// Whether the Engine has a registered encoder for mimeType.
func (engine *Engine) HandlesEncode(mimeType mimetype.MimeType) bool {
	_, ok := engine.encoders[mimeType]
	return ok
}

// Whether the Engine has a registered decoder for mimeType.
func (engine *Engine) HandlesDecode(mimeType mimetype.MimeType) bool {
	_, ok := engine.decoders[mimeType]
	return ok
}

// Whether the Engine has a registered decoder AND encoder for mimeType.
func (engine *Engine) Handles(mimeType mimetype.MimeType) bool {
	return engine.HandlesEncode(mimeType) && engine.HandlesDecode(mimeType)
}

// Uses an encoder while catching panics to return as errors
func (engine *Engine) safeEncode(
	encoder Encoder, writer io.Writer, content interface{}, strategy EncodingStrategy,
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during encode: %v", recovered)
		}
	}()

	err = encoder.Encode(engine, writer, content, strategy)
	return err
}

// Uses a decoder while catching panics to return as errors
func (engine *Engine) safeDecode(
	decoder Decoder,
	reader io.Reader,
	contentReceiver interface{},
	strategy DecodingStrategy,
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during decode: %v", recovered)
		}
	}()

	err = decoder.Decode(engine, reader, contentReceiver, strategy)
	return err
}

// Attempts to decode content with all registered decoders until one succeeds or all
// fail.
func (engine *Engine) sniffContent(
	contentReceiver interface{},
	reader io.Reader,
	strategy DecodingStrategy,
) error {
	// We need to read the content multiple times, so lets load the bytes into a var.
	contentBuffer := bytes.NewBuffer(make([]byte, 0))
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return xerrors.Errorf("error reading contentBytes: %w", err)
	}

	var decoderErr error

	for _, mimeType := range engine.decoderOrder {
		// Make a buffer for this attempt, otherwise we'll run out of bytes.
		thisReader := bytes.NewBuffer(contentBuffer.Bytes())
		thisErr := engine.safeDecode(
			engine.decoders[mimeType], thisReader, contentReceiver, strategy,
		)
		if thisErr == nil {
			return nil
		}

		if decoderErr == nil {
			decoderErr = thisErr
		} else {
			decoderErr = xerrors.Errorf(
				"decoding error: %v after: %w", thisErr, decoderErr,
			)
		}
	}

	if decoderErr == nil {
		decoderErr = xerrors.New("no decoders registered")
	}
	return decoderErr
}

// Picks the mimetype for encoding / decoding objects when source or target mimetype is
// unknown.
func pickContentMimeType(
	mimeType mimetype.MimeType, content interface{}, encoding bool,
) mimetype.MimeType {
	if mimeType == mimetype.UNKNOWN {
		var useType mimetype.MimeType

		switch content.(type) {
		case string:
			useType = mimetype.TEXT
		case *string:
			useType = mimetype.TEXT
		default:
			useType = mimetype.JSON
		}

		// If we are decoding, we only want to force a text decoding if the receiver is
		// a string.
		if encoding || useType == mimetype.TEXT {
			mimeType = useType
		}
	}
	return mimeType
}

func (engine *Engine) Decode(
	mimeType mimetype.MimeType,
	contentReceiver interface{},
	reader io.Reader,
	strategy DecodingStrategy,
) error {
	mimeType = pickContentMimeType(mimeType, contentReceiver, false)

	// Close the reader if it's a closer.
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	if err := strategy.Validate(); err != nil {
		return err
	}

	if mimeType == mimetype.UNKNOWN {
		if !engine.SniffType() {
			return xerrors.New("mimetype is unknown and sniffing is disabled")
		}
		return engine.sniffContent(contentReceiver, reader, strategy)
	}

	decoder, ok := engine.decoders[mimeType]
	if !ok {
		return xerrors.New("no decoder for " + string(mimeType))
	}

	err := engine.safeDecode(decoder, reader, contentReceiver, strategy)
	if err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}

	return nil
}

func (engine *Engine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
	strategy EncodingStrategy,
) error {
	mimeType = pickContentMimeType(mimeType, content, true)

	if err := strategy.Validate(); err != nil {
		return err
	}

	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	err := engine.safeEncode(encoder, writer, content, strategy)
	if err != nil {
		return xerrors.Errorf("encode err: %w", err)
	}
	return nil
}

// Returns the JSON handle for a policy, building it on first use.
func (engine *Engine) jsonHandle(codecPolicy policy) (*codec.JsonHandle, error) {
	engine.lock.Lock()
	defer engine.lock.Unlock()

	if handle, ok := engine.jsonHandles[codecPolicy]; ok {
		return handle, nil
	}

	handle, err := newJSONHandle(codecPolicy, engine.jsonExtensions)
	if err != nil {
		return nil, err
	}
	engine.jsonHandles[codecPolicy] = handle
	return handle, nil
}

// Returns the form encoder for a policy, building it on first use.
func (engine *Engine) formEncoder(codecPolicy policy) *schema.Encoder {
	engine.lock.Lock()
	defer engine.lock.Unlock()

	if encoder, ok := engine.formEncoders[codecPolicy]; ok {
		return encoder
	}

	encoder := newSchemaEncoder(codecPolicy)
	engine.formEncoders[codecPolicy] = encoder
	return encoder
}

// AddJSONExtensions registers extensions for JSON handles. Handles that were already
// built are dropped so the next encode picks the extensions up.
func (engine *Engine) AddJSONExtensions(extensions []*JSONExtensionOpts) {
	engine.lock.Lock()
	defer engine.lock.Unlock()

	engine.jsonExtensions = append(engine.jsonExtensions, extensions...)
	engine.jsonHandles = make(map[policy]*codec.JsonHandle)
}

// NewContentEngine returns an Engine with the default encoders and decoders
// registered.
func NewContentEngine(allowSniff bool) *Engine {
	engine := &Engine{
		encoders:      make(encoderMapping),
		decoders:      make(decoderMapping),
		sniffMimeType: allowSniff,
		jsonHandles:   make(map[policy]*codec.JsonHandle),
		formEncoders:  make(map[policy]*schema.Encoder),
	}

	// Add the encoders.
	engine.SetEncoder(mimetype.JSON, &jsonEncoder{})
	engine.SetEncoder(mimetype.FORM, &formEncoder{})
	engine.SetEncoder(mimetype.YAML, &yamlEncoder{})
	engine.SetEncoder(mimetype.BSON, &bsonEncoder{})
	engine.SetEncoder(mimetype.TEXT, &textEncoder{})

	// Add the default decoders. JSON first so sniffing tries it first.
	engine.SetDecoder(mimetype.JSON, &jsonEncoder{})
	engine.SetDecoder(mimetype.FORM, &formEncoder{})
	engine.SetDecoder(mimetype.YAML, &yamlEncoder{})
	engine.SetDecoder(mimetype.BSON, &bsonEncoder{})
	engine.SetDecoder(mimetype.TEXT, &textEncoder{})

	return engine
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine. It does not sniff.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewContentEngine(false)
	})
	return defaultEngine
}

// MarshalJSON encodes content with the default engine and strategy.
func MarshalJSON(content interface{}) ([]byte, error) {
	buffer := &bytes.Buffer{}
	err := Default().Encode(mimetype.JSON, content, buffer, DefaultEncodingStrategy)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
