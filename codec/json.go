package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec. It is the portable choice when
// another tool reads the stored reports.
type JSON struct {
	// Indent, when set, pretty-prints with this indent string.
	Indent string
}

// Marshal encodes the value to JSON.
func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}
