package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bytecode/errors"
)

// Format is a schema file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json" // read with comments and trailing commas allowed
	FormatCBOR Format = "cbor" // Core Deterministic Encoding
)

// Formats lists every supported format.
var Formats = []Format{FormatYAML, FormatTOML, FormatJSON, FormatCBOR}

// ParseFormat resolves a format name. "yml" and "jsonc" are accepted as
// aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", errors.New(errors.PhaseSchema, errors.KindOther).
		Value(name).
		Detail("unknown schema format %q", name).
		Build()
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.PhaseSchema, errors.KindOther).
			Value(path).
			Detail("schema file %q has no extension", path).
			Build()
	}
	return ParseFormat(ext)
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("schema: CBOR decoder initialization failed: " + err.Error())
	}
}

// Load reads a schema file, choosing the format by extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "read "+path)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded schema",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("types", len(f.Types)))
	return f, nil
}

// Parse decodes a schema document. Unknown keys are errors in every format.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	var err error

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	case FormatTOML:
		var meta toml.MetaData
		meta, err = toml.Decode(string(data), &f)
		if err == nil {
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, errors.New(errors.PhaseSchema, errors.KindOther).
					Value(undecoded[0].String()).
					Detail("unknown key %q", undecoded[0].String()).
					Build()
			}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case FormatCBOR:
		err = cborDec.Unmarshal(data, &f)
	default:
		return nil, errors.Unsupported(errors.PhaseSchema, "format "+string(format))
	}

	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "parse "+string(format))
	}
	return &f, nil
}

// Marshal encodes f in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "encode yaml")
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "encode toml")
		}
	case FormatJSON:
		out, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "encode json")
		}
		buf.Write(out)
		buf.WriteByte('\n')
	case FormatCBOR:
		out, err := cborEnc.Marshal(f)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "encode cbor")
		}
		return out, nil
	default:
		return nil, errors.Unsupported(errors.PhaseSchema, "format "+string(format))
	}

	return buf.Bytes(), nil
}
