// Package codec encodes search results for export.
//
// A Codec turns a value into bytes; a Compression wraps the output stream.
// Both are selected by their stable names so command-line flags and file
// extensions map onto them directly.
package codec

// Codec converts exported values to bytes and back. Implementations hold no
// state.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is used by Encode and Decode when no codec is given.
var Default Codec = GoJSON{}

// ByName looks a codec up by the name its Name method reports.
func ByName(name string) (Codec, bool) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Names lists the names accepted by ByName.
func Names() []string { return []string{"json", "go-json"} }
