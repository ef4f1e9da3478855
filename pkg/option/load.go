package option

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// Option file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatFor returns the option format implied by a file name.
// Anything other than .json is treated as TOML.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Load reads and decodes an option file. The result is not resolved.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "option file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	c, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return c, nil
}

// Decode reads an option document in the given format.
func Decode(r io.Reader, format string) (*Chart, error) {
	var c Chart
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid JSON option")
		}
	case FormatTOML, "":
		md, err := toml.NewDecoder(r).Decode(&c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid TOML option")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidOption, "unknown option key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown option format %q", format)
	}
	return &c, nil
}

// Encode writes c as JSON.
func Encode(w io.Writer, c *Chart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
