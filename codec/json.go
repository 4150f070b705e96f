package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// JSON writes results with encoding/json. Layer maps are keyed by layer
// index, which JSON carries as object keys.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

// GoJSON writes the same documents as JSON through github.com/goccy/go-json,
// which is noticeably faster on large layer dumps. Either codec reads the
// other's output.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }
