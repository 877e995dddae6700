package encoding

import (
	"io"
	"reflect"

	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// JSONExtensionOpts holds an extension to add to every JSON handle the engine
// builds, after the strategy extensions.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	Tag          uint64
	ExtInterface codec.InterfaceExt
}

// Converts sgtypes.Time values according to the date policy of a strategy.
type jsonExtDate struct {
	codecPolicy policy
}

func (ext *jsonExtDate) ConvertExt(value interface{}) interface{} {
	switch typed := value.(type) {
	case sgtypes.Time:
		return ext.codecPolicy.convertDate(typed.Time())
	case *sgtypes.Time:
		return ext.codecPolicy.convertDate(typed.Time())
	}
	panic(xerrors.Errorf("date extension cannot convert %T", value))
}

func (ext *jsonExtDate) UpdateExt(dest interface{}, value interface{}) {
	parsed, err := ext.codecPolicy.parseDate(value)
	if err != nil {
		panic(xerrors.Errorf("error decoding date: %w", err))
	}
	*dest.(*sgtypes.Time) = sgtypes.NewTime(parsed)
}

// Converts BinData values according to the binary policy of a strategy.
type jsonExtBinData struct {
	codecPolicy policy
}

func (ext *jsonExtBinData) ConvertExt(value interface{}) interface{} {
	switch typed := value.(type) {
	case sgtypes.BinData:
		return ext.codecPolicy.formatBinary(typed)
	case *sgtypes.BinData:
		return ext.codecPolicy.formatBinary(*typed)
	}
	panic(xerrors.Errorf("binary extension cannot convert %T", value))
}

func (ext *jsonExtBinData) UpdateExt(dest interface{}, value interface{}) {
	var text string
	switch typed := value.(type) {
	case string:
		text = typed
	case []byte:
		text = string(typed)
	case sgtypes.BinData:
		text = string(typed)
	default:
		panic(xerrors.Errorf("expected binary string, got %T", value))
	}
	decoded, err := ext.codecPolicy.parseBinary(text)
	if err != nil {
		panic(xerrors.Errorf("error decoding BinData: %w", err))
	}
	*dest.(*sgtypes.BinData) = decoded
}

// Builds a JSON handle for a policy. Map keys are written in sorted order so that
// payloads, and the byte budgets measured from them, are reproducible.
func newJSONHandle(
	codecPolicy policy, extensions []*JSONExtensionOpts,
) (*codec.JsonHandle, error) {
	handle := &codec.JsonHandle{}
	handle.Canonical = true
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	err := handle.SetInterfaceExt(
		reflect.TypeOf(sgtypes.Time{}), 1, &jsonExtDate{codecPolicy},
	)
	if err != nil {
		return nil, xerrors.Errorf("error adding date extension: %w", err)
	}

	err = handle.SetInterfaceExt(
		reflect.TypeOf(sgtypes.BinData{}), 2, &jsonExtBinData{codecPolicy},
	)
	if err != nil {
		return nil, xerrors.Errorf("error adding binary extension: %w", err)
	}

	for _, extOpts := range extensions {
		err := handle.SetInterfaceExt(extOpts.ValueType, extOpts.Tag, extOpts.ExtInterface)
		if err != nil {
			return nil, xerrors.Errorf(
				"error adding json extension to content engine: %w", err,
			)
		}
	}

	return handle, nil
}

// default JSON encoder for Engine.
type jsonEncoder struct{}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{}, strategy EncodingStrategy,
) error {
	defaultEngine, err := asEngine(engine)
	if err != nil {
		return err
	}
	handle, err := defaultEngine.jsonHandle(strategy.policy())
	if err != nil {
		return err
	}
	return codec.NewEncoder(writer, handle).Encode(content)
}

func (encoder *jsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{}, strategy DecodingStrategy,
) error {
	defaultEngine, err := asEngine(engine)
	if err != nil {
		return err
	}
	handle, err := defaultEngine.jsonHandle(strategy.policy())
	if err != nil {
		return err
	}
	return codec.NewDecoder(reader, handle).Decode(contentReceiver)
}

// The built-in encoders keep their per-strategy state on *Engine.
func asEngine(engine ContentEngine) (*Engine, error) {
	defaultEngine, ok := engine.(*Engine)
	if !ok {
		return nil, xerrors.Errorf("unsupported content engine %T", engine)
	}
	return defaultEngine, nil
}
