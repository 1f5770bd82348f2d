package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"unicode/utf8"
)

// Bundle maps "<name>_<input|output>" to raw schema text.
type Bundle map[string]string

// BuildBundle reads every schema file of the registered units. Contents are
// stored verbatim; they are not validated as JSON.
func BuildBundle(fsys fs.FS, tables ...*RoutingTable) (Bundle, error) {
	bundle := make(Bundle)
	for _, table := range tables {
		for _, unit := range table.Units {
			for _, s := range []struct{ direction, file string }{
				{"input", unit.InputSchema},
				{"output", unit.OutputSchema},
			} {
				direction, file := s.direction, s.file
				if file == "" {
					continue
				}

				data, err := fs.ReadFile(fsys, file)
				if err != nil {
					return nil, buildErr(IoError, "reading schema "+file, err)
				}
				if !utf8.Valid(data) {
					return nil, buildErr(JsonError, "embedding schema "+file, fmt.Errorf("content is not valid UTF-8"))
				}

				key := unit.SchemaKey(direction)
				if _, dup := bundle[key]; dup {
					return nil, buildErr(JsonError, "embedding schema "+file, fmt.Errorf("key %q already used by another unit", key))
				}
				bundle[key] = string(data)
			}
		}
	}
	return bundle, nil
}

// Keys returns the bundle keys in lexical order.
func (b Bundle) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode serializes the bundle once as a JSON object with sorted keys.
func (b Bundle) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(b)); err != nil {
		return nil, buildErr(JsonError, "encoding schema bundle", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
